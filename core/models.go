package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing of the document source.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata holds the structured attributes extracted from a document
// at ingestion time. Every indexed document carries a fully populated
// Metadata; the relevance filter operates on these fields only.
type Metadata struct {
	Source        string    // Filename the document was loaded from
	DocType       DocType   // Classified document category
	EffectiveDate time.Time // When the document's content became/becomes true
	Year          int       // Always EffectiveDate.Year(); never set independently
	Version       int       // Parsed from the filename, 0 when unversioned
}

// Document is an immutable unit of knowledge in the index.
// It is created once at ingestion and replaced only by a full rebuild.
type Document struct {
	Id       ID
	Source   string
	Content  string
	Metadata Metadata
	Vector   []float32 // Embedding vector for semantic search
}

// QueryIntent is the classified category of a user query.
// It is used only to narrow candidate filtering, never to alter
// the grounding rules of answer generation.
type QueryIntent struct {
	Intent     DocType
	Confidence int    // 1 (guess) to 5 (certain)
	Reasoning  string // Diagnostic only, never used programmatically
}

// DefaultIntent returns the degraded intent used when classification fails.
// A default intent never makes an answer incorrect, only less filtered.
func DefaultIntent(reason string) QueryIntent {
	return QueryIntent{
		Intent:     DocTypeGeneral,
		Confidence: 1,
		Reasoning:  reason,
	}
}

// Answer is the structured, citation-bearing response to a query.
type Answer struct {
	Answer       string
	Reasoning    string
	CitedSources []string // Sources actually used, may be empty
	// PolicyAllowsRemote is a tri-state flag: nil when the question is not
	// about remote-work policy.
	PolicyAllowsRemote *bool
}

// NoAnswer returns the fixed answer used when retrieval produced no
// authoritative documents. The generator is never consulted in that case.
func NoAnswer(reason string) Answer {
	return Answer{
		Answer:       "No relevant documents found to answer your question.",
		Reasoning:    reason,
		CitedSources: []string{},
	}
}

// SearchResult pairs a retrieved document with its similarity score.
type SearchResult struct {
	Document *Document
	Score    float32
}
