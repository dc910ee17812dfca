package storage

import (
	"context"

	"github.com/poiesic/deskrag/core"
)

// DocumentRepository provides operations over the persisted document index.
// Implementations must be thread-safe for concurrent queries; a full index
// rebuild is exclusive with queries and handled above this interface.
type DocumentRepository interface {
	// AddDocuments adds one or more documents to the index.
	// Document IDs are content-addressed from the source name, so re-adding
	// a document with the same source overwrites the previous entry.
	AddDocuments(ctx context.Context, docs ...*core.Document) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentBySource retrieves a document by its source name.
	// Returns ErrNotFound if no document with that source exists.
	GetDocumentBySource(ctx context.Context, source string) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing ones).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// CountDocuments returns the number of documents in the index.
	CountDocuments(ctx context.Context) (int, error)

	// FindSimilar finds documents similar to the given vector.
	// Returns up to limit results, ordered by cosine similarity descending.
	// Ranking order is advisory; callers decide authority from metadata.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
