package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/deskrag/core"
	"github.com/poiesic/deskrag/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(source string, docType core.DocType, year int, vector []float32) *core.Document {
	return &core.Document{
		Id:      core.IDFromContent(source),
		Source:  source,
		Content: "content of " + source,
		Metadata: core.Metadata{
			Source:        source,
			DocType:       docType,
			EffectiveDate: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			Year:          year,
		},
		Vector: vector,
	}
}

func TestAddAndGetDocument(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	doc := testDocument("vacation_policy_2024.txt", core.DocTypePolicy, 2024, []float32{1, 0, 0})

	require.NoError(t, repo.AddDocuments(ctx, doc))

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetDocument(ctx, doc.Id)
		require.NoError(t, err)
		assert.Equal(t, doc.Source, got.Source)
		assert.Equal(t, doc.Content, got.Content)
		assert.Equal(t, core.DocTypePolicy, got.Metadata.DocType)
		assert.Equal(t, 2024, got.Metadata.Year)
		assert.Equal(t, doc.Vector, got.Vector)
	})

	t.Run("by source", func(t *testing.T) {
		got, err := repo.GetDocumentBySource(ctx, "vacation_policy_2024.txt")
		require.NoError(t, err)
		assert.Equal(t, doc.Id, got.Id)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetDocument(ctx, core.ID(12345))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := repo.GetDocumentBySource(ctx, "nonexistent.txt")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAddDocuments_SameSourceOverwrites(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	doc1 := testDocument("memo.txt", core.DocTypeMemo, 2023, nil)
	doc2 := testDocument("memo.txt", core.DocTypeMemo, 2024, nil)

	require.NoError(t, repo.AddDocuments(ctx, doc1))
	require.NoError(t, repo.AddDocuments(ctx, doc2))

	count, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := repo.GetDocumentBySource(ctx, "memo.txt")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Metadata.Year)
}

func TestGetDocuments_SkipsMissing(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	doc := testDocument("menu.txt", core.DocTypeMenu, 2024, nil)
	require.NoError(t, repo.AddDocuments(ctx, doc))

	docs, err := repo.GetDocuments(ctx, doc.Id, core.ID(999))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.Id, docs[0].Id)
}

func TestCountDocuments(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()

	count, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	docs := []*core.Document{
		testDocument("a_policy_2023.txt", core.DocTypePolicy, 2023, nil),
		testDocument("b_menu_2024.txt", core.DocTypeMenu, 2024, nil),
		testDocument("c_memo_2024.txt", core.DocTypeMemo, 2024, nil),
	}
	require.NoError(t, repo.AddDocuments(ctx, docs...))

	count, err = repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestFindSimilar(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	docs := []*core.Document{
		testDocument("aligned.txt", core.DocTypeGeneral, 2024, []float32{1, 0, 0}),
		testDocument("orthogonal.txt", core.DocTypeGeneral, 2024, []float32{0, 1, 0}),
		testDocument("close.txt", core.DocTypeGeneral, 2024, []float32{0.9, 0.1, 0}),
		testDocument("unembedded.txt", core.DocTypeGeneral, 2024, nil),
	}
	require.NoError(t, repo.AddDocuments(ctx, docs...))

	t.Run("ranked by cosine similarity", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 10)
		require.NoError(t, err)
		require.Len(t, results, 3) // unembedded doc excluded
		assert.Equal(t, "aligned.txt", results[0].Document.Source)
		assert.Equal(t, "close.txt", results[1].Document.Source)
		assert.Equal(t, "orthogonal.txt", results[2].Document.Source)
		assert.InDelta(t, 1.0, results[0].Score, 1e-5)
		assert.InDelta(t, 0.0, results[2].Score, 1e-5)
	})

	t.Run("limit applied", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}

func TestLoadBackend(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadBackend(filepath.Join(t.TempDir(), "absent"))
		assert.ErrorIs(t, err, storage.ErrIndexNotFound)
	})

	t.Run("empty directory", func(t *testing.T) {
		dir := t.TempDir()
		_, err := LoadBackend(dir)
		assert.ErrorIs(t, err, storage.ErrIndexNotFound)
	})

	t.Run("round trip through disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "index")

		backend, err := OpenBackend(dir, false)
		require.NoError(t, err)
		repo := NewDocumentRepository(backend)

		ctx := context.Background()
		doc := testDocument("persisted.txt", core.DocTypeMemo, 2024, []float32{0.5, 0.5})
		require.NoError(t, repo.AddDocuments(ctx, doc))
		require.NoError(t, repo.Close())
		require.NoError(t, backend.Close())

		loaded, err := LoadBackend(dir)
		require.NoError(t, err)
		defer loaded.Close()

		repo2 := NewDocumentRepository(loaded)
		got, err := repo2.GetDocumentBySource(ctx, "persisted.txt")
		require.NoError(t, err)
		assert.Equal(t, doc.Content, got.Content)

		// Directory is a real badger database
		_, err = os.Stat(filepath.Join(dir, "MANIFEST"))
		assert.NoError(t, err)
	})
}
