package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/deskrag/ai"
	"github.com/poiesic/deskrag/core"
	"github.com/poiesic/deskrag/storage"
)

const (
	// DefaultTopK is the number of documents returned to the caller.
	DefaultTopK = 5

	// DefaultSearchK is the similarity-search fan-out. A larger pool is
	// over-fetched and then pruned by intent filtering.
	DefaultSearchK = 10
)

// Retriever finds the authoritative documents for a query: the candidates
// most similar to the query, narrowed by intent and with policy conflicts
// resolved.
type Retriever struct {
	repository storage.DocumentRepository
	embedder   ai.Embedder
	classifier ai.IntentClassifier
	topK       int
	searchK    int
	logger     *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTopK sets the maximum number of documents returned.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k < 1 {
			k = 1
		}
		r.topK = k
		return nil
	}
}

// WithSearchK sets the similarity-search fan-out. Values below the top-K
// are raised to it.
func WithSearchK(k int) Option {
	return func(r *Retriever) error {
		r.searchK = k
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(repository storage.DocumentRepository, provider ai.Provider, opts ...Option) (*Retriever, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		repository: repository,
		embedder:   provider.Embedder(),
		classifier: provider.IntentClassifier(),
		topK:       DefaultTopK,
		searchK:    DefaultSearchK,
		logger:     slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.searchK < r.topK {
		r.searchK = r.topK
	}

	return r, nil
}

// Retrieve returns up to top-K authoritative documents for the query.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]*core.Document, error) {
	return r.RetrieveWithMonitor(ctx, query, nil)
}

// RetrieveWithMonitor retrieves documents with monitoring. The monitor
// receives callbacks at each stage of the retrieval process.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, monitor QueryMonitor) ([]*core.Document, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := r.repository.FindSimilar(ctx, embedding, r.searchK)
	if err != nil {
		r.logger.Error("error querying for similar documents", "err", err)
		return nil, err
	}
	monitor.AfterRetrieval(matches)

	candidates := make([]*core.Document, len(matches))
	for i, match := range matches {
		candidates[i] = match.Document
	}
	r.logger.Debug("retrieved candidates", "count", len(candidates))

	// Classification never fails a query. Conforming classifiers already
	// degrade internally; anything else is degraded here.
	intent, err := r.classifier.Classify(ctx, query)
	if err != nil {
		r.logger.Warn("intent classification failed, defaulting to general", "err", err)
		intent = core.DefaultIntent("Failed to classify")
	}
	monitor.AfterClassification(intent)
	r.logger.Info("filtering documents", "intent", intent.Intent, "confidence", intent.Confidence)

	filtered := FilterByIntent(candidates, intent)
	monitor.AfterFiltering(filtered)

	if len(filtered) > r.topK {
		filtered = filtered[:r.topK]
	}

	r.logger.Debug("retrieval complete",
		"candidates", len(candidates),
		"returned", len(filtered))
	monitor.Finish(filtered)
	return filtered, nil
}
