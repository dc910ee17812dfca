// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package deskrag

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/deskrag/ai"
	"github.com/poiesic/deskrag/ai/openai"
	"github.com/poiesic/deskrag/answer"
	"github.com/poiesic/deskrag/config"
	"github.com/poiesic/deskrag/core"
	"github.com/poiesic/deskrag/ingestion"
	"github.com/poiesic/deskrag/search"
	"github.com/poiesic/deskrag/storage"
	"github.com/poiesic/deskrag/storage/badger"
)

// Engine ties the document index, retrieval, and answer generation into a
// single query surface.
//
// Queries share the index read-only and may run concurrently. Ingestion
// replaces the index wholesale and therefore excludes in-flight queries:
// the engine holds an exclusive lock for the duration of an index rebuild.
type Engine struct {
	cfg      *config.Config
	provider ai.Provider
	logger   *slog.Logger

	mu      sync.RWMutex
	backend *badger.Backend
	repo    storage.DocumentRepository
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	provider ai.Provider
}

// WithProvider overrides the AI provider. Default is an OpenAI-compatible
// provider built from the configuration.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// NewEngine creates an engine from the application configuration. The index
// is not opened yet; call Open or Ingest first.
func NewEngine(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(aiConfig(cfg))
		if err != nil {
			return nil, err
		}
	}

	return &Engine{
		cfg:      cfg,
		provider: provider,
		logger:   slog.Default().With("component", "engine"),
	}, nil
}

// aiConfig maps the application configuration onto the AI service config.
func aiConfig(cfg *config.Config) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(cfg.Provider.Host),
		ai.WithEmbeddingModel(cfg.Models.EmbeddingModel),
		ai.WithChatModel(cfg.Models.ChatModel),
		ai.WithAPIKey(cfg.APIKey),
		ai.WithEmbeddingDimension(cfg.Models.EmbeddingDimension),
		ai.WithTemperatures(cfg.Models.TemperatureIntent, cfg.Models.TemperatureAnswer),
	)
}

// Open loads the existing index. It fails with storage.ErrIndexNotFound
// when no index has been built yet; the caller may ingest and retry.
func (e *Engine) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.backend != nil {
		return nil
	}

	backend, err := badger.LoadBackend(e.cfg.Paths.IndexDir)
	if err != nil {
		return err
	}

	e.backend = backend
	e.repo = badger.NewDocumentRepository(backend)
	return nil
}

// Ingest rebuilds the index from the configured knowledge base and returns
// the number of documents indexed. It is mutually exclusive with queries:
// the live index is closed, replaced on disk, and reopened.
func (e *Engine) Ingest(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			return 0, err
		}
		e.backend = nil
		e.repo = nil
	}

	pipeline, err := ingestion.NewPipeline(
		e.cfg.Paths.KnowledgeBase,
		e.cfg.Paths.IndexDir,
		e.provider,
		ingestion.WithEmbeddingDimension(e.cfg.Models.EmbeddingDimension),
	)
	if err != nil {
		return 0, err
	}
	defer pipeline.Release()

	count, err := pipeline.Run(ctx)
	if err != nil {
		return 0, err
	}

	backend, err := badger.LoadBackend(e.cfg.Paths.IndexDir)
	if err != nil {
		return count, err
	}
	e.backend = backend
	e.repo = badger.NewDocumentRepository(backend)
	return count, nil
}

// Query answers a single question against the open index.
//
// When no documents survive retrieval and filtering, a fixed "no relevant
// documents" answer is returned without consulting the generative model.
func (e *Engine) Query(ctx context.Context, question string) (core.Answer, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.repo == nil {
		return core.Answer{}, storage.ErrIndexNotFound
	}

	retriever, err := search.NewRetriever(e.repo, e.provider,
		search.WithTopK(e.cfg.Retrieval.TopK),
		search.WithSearchK(e.cfg.Retrieval.SimilaritySearchK),
	)
	if err != nil {
		return core.Answer{}, err
	}

	e.logger.Info("processing query", "question", question)
	docs, err := retriever.Retrieve(ctx, question)
	if err != nil {
		return core.Answer{}, err
	}

	if len(docs) == 0 {
		e.logger.Warn("no relevant documents found", "question", question)
		return core.NoAnswer("No documents matched the query"), nil
	}

	generator, err := answer.NewGenerator(e.provider.AnswerGenerator())
	if err != nil {
		return core.Answer{}, err
	}

	return generator.Generate(ctx, question, docs)
}

// Close releases the index and the AI provider.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing index backend", "err", err)
			return err
		}
		e.backend = nil
		e.repo = nil
	}
	return nil
}
