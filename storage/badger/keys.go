package badger

import (
	"fmt"

	"github.com/poiesic/deskrag/core"
)

// Key prefixes for different data types
const (
	documentPrefix       = "docrec"
	documentSourcePrefix = "docsrc"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeSourceKey generates a key for the source-name index.
// Format: prefix:source
func makeSourceKey(source string) []byte {
	prefix := documentSourcePrefix + ":"
	buf := make([]byte, len(prefix)+len(source))
	offset := copy(buf, []byte(prefix))
	copy(buf[offset:], []byte(source))
	return buf
}
