package answer

import (
	"fmt"
	"strings"

	"github.com/poiesic/deskrag/core"
)

// BuildContext renders the authoritative documents as the grounding block
// handed to the generative model. Each document appears in full, prefixed
// with its complete metadata. No truncation: the filtered set is expected
// to be small.
func BuildContext(docs []*core.Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, fmt.Sprintf(
			"=== Document: %s ===\n"+
				"Type: %s\n"+
				"Year: %d\n"+
				"Version: %d\n"+
				"Effective Date: %s\n\n"+
				"Content:\n%s\n",
			doc.Source,
			doc.Metadata.DocType,
			doc.Metadata.Year,
			doc.Metadata.Version,
			doc.Metadata.EffectiveDate.Format("2006-01-02"),
			doc.Content,
		))
	}
	return strings.Join(parts, "\n")
}
