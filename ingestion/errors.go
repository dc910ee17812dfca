package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a document repository is not provided.
	ErrRepositoryRequired = errors.New("document repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrCorpusNotFound is returned when the knowledge-base directory does not exist.
	ErrCorpusNotFound = errors.New("knowledge base not found")

	// ErrCorpusEmpty is returned when the knowledge-base directory contains no
	// text files.
	ErrCorpusEmpty = errors.New("no text files in knowledge base")

	// ErrNoDocuments is returned when every file in the corpus failed
	// processing. A partially failed corpus is tolerated; a fully failed one
	// is not.
	ErrNoDocuments = errors.New("no documents were successfully processed")

	// ErrMissingDate is returned when no effective date can be determined for
	// a document.
	ErrMissingDate = errors.New("no effective date found")

	// ErrDimensionMismatch is returned when the embedder produces vectors of
	// an unexpected width.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
