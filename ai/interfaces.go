package ai

import (
	"context"

	"github.com/poiesic/deskrag/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentClassifier maps a free-text query to a document-type category.
// Implementations must be thread-safe for concurrent use.
type IntentClassifier interface {
	// Classify determines which document category would answer the query.
	// Implementations must never fail a query over classification: on any
	// provider or schema error they return core.DefaultIntent with a nil
	// error. A wrong intent only makes filtering less selective, never the
	// answer incorrect.
	Classify(ctx context.Context, query string) (core.QueryIntent, error)
}

// AnswerGenerator produces a grounded, citation-bearing answer from a
// question and a pre-built context block of authoritative documents.
// Implementations must be thread-safe for concurrent use.
type AnswerGenerator interface {
	// Generate asks the model for a structured answer grounded exclusively
	// in contextBlock. A provider error or schema-invalid response is a hard
	// failure: unlike intent classification it is never silently defaulted.
	Generate(ctx context.Context, question, contextBlock string) (core.Answer, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, IntentClassifier and
// AnswerGenerator instances, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// IntentClassifier returns the query classification service.
	IntentClassifier() IntentClassifier

	// AnswerGenerator returns the answer generation service.
	AnswerGenerator() AnswerGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
