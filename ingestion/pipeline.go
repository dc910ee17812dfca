package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/deskrag/ai"
	"github.com/poiesic/deskrag/core"
	"github.com/poiesic/deskrag/storage/badger"
)

// Pipeline orchestrates the ingestion of a document corpus into a fresh
// search index. It reads text files from the knowledge-base directory,
// extracts metadata, generates embeddings concurrently, and builds the
// index in a temporary directory before atomically replacing the live one.
type Pipeline struct {
	kbPath       string
	indexPath    string
	provider     ai.Provider
	extractor    *MetadataExtractor
	embeddingDim int
	pool         *ants.Pool
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithEmbeddingDimension sets the expected embedding width. Documents whose
// vectors come back with a different width are skipped. Zero disables the
// check.
func WithEmbeddingDimension(dim int) Option {
	return func(p *Pipeline) error {
		p.embeddingDim = dim
		return nil
	}
}

// WithModTimeFunc overrides the fallback date source for documents that
// carry no date in filename or content.
func WithModTimeFunc(fn ModTimeFunc) Option {
	return func(p *Pipeline) error {
		p.extractor = NewMetadataExtractor(fn)
		return nil
	}
}

// NewPipeline creates an ingestion pipeline reading from kbPath and writing
// the index to indexPath.
func NewPipeline(kbPath, indexPath string, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		kbPath:    kbPath,
		indexPath: indexPath,
		provider:  provider,
		pool:      pool,
		logger:    slog.Default().With("component", "ingestion"),
	}

	// Default fallback date source is the corpus file's modification time.
	p.extractor = NewMetadataExtractor(func(filename string) (time.Time, error) {
		info, err := os.Stat(filepath.Join(kbPath, filename))
		if err != nil {
			return time.Time{}, err
		}
		return info.ModTime(), nil
	})

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run executes a full corpus ingestion and returns the number of documents
// indexed. Individual document failures are logged and skipped; the run
// fails only when the corpus is missing, empty, or no document survives
// processing. The live index is replaced atomically: a query hitting the
// old index during a run sees complete data.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	files, err := p.listCorpus()
	if err != nil {
		return 0, err
	}
	p.logger.Info("starting ingestion", "path", p.kbPath, "files", len(files))

	docs := p.loadDocuments(files)
	docs = p.embedDocuments(ctx, docs)
	if len(docs) == 0 {
		return 0, ErrNoDocuments
	}

	if err := p.buildIndex(ctx, docs); err != nil {
		return 0, err
	}

	p.logger.Info("ingestion complete", "documents", len(docs), "files", len(files))
	return len(docs), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// listCorpus returns the sorted names of text files in the knowledge base.
func (p *Pipeline) listCorpus() ([]string, error) {
	if _, err := os.Stat(p.kbPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, p.kbPath)
	}

	matches, err := filepath.Glob(filepath.Join(p.kbPath, "*.txt"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCorpusEmpty, p.kbPath)
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	sort.Strings(names)
	return names, nil
}

// loadDocuments reads and extracts metadata for each corpus file.
// Files that cannot be read or whose metadata is invalid are skipped.
func (p *Pipeline) loadDocuments(files []string) []*core.Document {
	docs := make([]*core.Document, 0, len(files))
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(p.kbPath, name))
		if err != nil {
			p.logger.Warn("skipping unreadable file", "file", name, "err", err)
			continue
		}
		content := string(raw)

		meta, err := p.extractor.Extract(name, content)
		if err != nil {
			p.logger.Warn("skipping file with invalid metadata", "file", name, "err", err)
			continue
		}

		p.logger.Debug("processed document",
			"file", name,
			"type", meta.DocType,
			"year", meta.Year,
			"version", meta.Version)

		docs = append(docs, &core.Document{
			Id:       core.IDFromContent(name),
			Source:   name,
			Content:  content,
			Metadata: meta,
		})
	}
	return docs
}

// embedDocuments generates embeddings concurrently via the worker pool.
// Documents whose embedding fails or has the wrong width are dropped.
func (p *Pipeline) embedDocuments(ctx context.Context, docs []*core.Document) []*core.Document {
	embedder := p.provider.Embedder()

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := make(map[int]bool)

	for i := range docs {
		i := i
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			vector, err := embedder.EmbedText(ctx, docs[i].Content)
			if err != nil {
				p.logger.Warn("skipping document, embedding failed",
					"file", docs[i].Source, "err", err)
				mu.Lock()
				failed[i] = true
				mu.Unlock()
				return
			}
			if p.embeddingDim > 0 && len(vector) != p.embeddingDim {
				p.logger.Warn("skipping document, embedding dimension mismatch",
					"file", docs[i].Source,
					"expected", p.embeddingDim,
					"received", len(vector),
					"err", ErrDimensionMismatch)
				mu.Lock()
				failed[i] = true
				mu.Unlock()
				return
			}
			docs[i].Vector = vector
		})
		if err != nil {
			wg.Done()
			p.logger.Warn("skipping document, pool submission failed",
				"file", docs[i].Source, "err", err)
			failed[i] = true
		}
	}
	wg.Wait()

	survivors := make([]*core.Document, 0, len(docs))
	for i, doc := range docs {
		if !failed[i] {
			survivors = append(survivors, doc)
		}
	}
	return survivors
}

// buildIndex writes documents into a fresh index built alongside the live
// one, then swaps directories. The temp directory shares the live index's
// parent so the rename stays on one filesystem.
func (p *Pipeline) buildIndex(ctx context.Context, docs []*core.Document) error {
	tmpPath := p.indexPath + ".tmp"
	if err := os.RemoveAll(tmpPath); err != nil {
		return err
	}

	backend, err := badger.OpenBackend(tmpPath, false)
	if err != nil {
		return err
	}

	repo := badger.NewDocumentRepository(backend)
	if err := repo.AddDocuments(ctx, docs...); err != nil {
		backend.Close()
		os.RemoveAll(tmpPath)
		return err
	}
	if err := backend.Close(); err != nil {
		os.RemoveAll(tmpPath)
		return err
	}

	if err := os.RemoveAll(p.indexPath); err != nil {
		return err
	}
	return os.Rename(tmpPath, p.indexPath)
}
