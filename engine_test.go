package deskrag

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/deskrag/ai/mock"
	"github.com/poiesic/deskrag/config"
	"github.com/poiesic/deskrag/core"
	"github.com/poiesic/deskrag/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *configForTest {
	t.Helper()
	kbPath := t.TempDir()
	indexPath := filepath.Join(t.TempDir(), "index")
	return &configForTest{kbPath: kbPath, indexPath: indexPath}
}

type configForTest struct {
	kbPath    string
	indexPath string
}

func defaultTestConfig(c *configForTest) *config.Config {
	cfg := config.Default()
	cfg.Paths.KnowledgeBase = c.kbPath
	cfg.Paths.IndexDir = c.indexPath
	// The mock embedder produces 384-wide vectors.
	cfg.Models.EmbeddingDimension = 384
	return cfg
}

func (c *configForTest) write(t *testing.T, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(c.kbPath, name), []byte(content), 0o644))
	}
}

func newTestEngine(t *testing.T, c *configForTest, provider *mock.MockProvider) *Engine {
	t.Helper()

	cfg := defaultTestConfig(c)
	engine, err := NewEngine(cfg, WithProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngineOpenMissingIndex(t *testing.T) {
	c := testConfig(t)
	engine := newTestEngine(t, c, mock.NewMockProvider().(*mock.MockProvider))

	err := engine.Open()
	assert.ErrorIs(t, err, storage.ErrIndexNotFound)
}

func TestEngineQueryBeforeOpen(t *testing.T) {
	c := testConfig(t)
	engine := newTestEngine(t, c, mock.NewMockProvider().(*mock.MockProvider))

	_, err := engine.Query(context.Background(), "anything?")
	assert.ErrorIs(t, err, storage.ErrIndexNotFound)
}

func TestEngineIngestThenQuery(t *testing.T) {
	c := testConfig(t)
	c.write(t, map[string]string{
		"remote_work_policy_v1_2020.txt": "Remote work requires manager approval for every day.",
		"remote_work_policy_v2_2024.txt": "Remote work is allowed up to 3 days per week.",
		"cafeteria_menu_2024.txt":        "Monday: pasta. Tuesday: tacos.",
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockClassifier().ClassifyFunc = func(ctx context.Context, query string) (core.QueryIntent, error) {
		return core.QueryIntent{Intent: core.DocTypePolicy, Confidence: 5, Reasoning: "test"}, nil
	}

	var seenContext string
	provider.GetMockGenerator().GenerateFunc = func(ctx context.Context, question, contextBlock string) (core.Answer, error) {
		seenContext = contextBlock
		return core.Answer{
			Answer:       "Up to 3 days per week.",
			Reasoning:    "2024 policy",
			CitedSources: []string{"remote_work_policy_v2_2024.txt"},
		}, nil
	}

	engine := newTestEngine(t, c, provider)

	count, err := engine.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	result, err := engine.Query(context.Background(), "how many remote days are allowed?")
	require.NoError(t, err)

	assert.Equal(t, "Up to 3 days per week.", result.Answer)
	assert.Equal(t, []string{"remote_work_policy_v2_2024.txt"}, result.CitedSources)

	// Only the winning policy reached the generator.
	assert.Contains(t, seenContext, "remote_work_policy_v2_2024.txt")
	assert.NotContains(t, seenContext, "remote_work_policy_v1_2020.txt")
}

func TestEngineQueryZeroDocsSkipsGenerator(t *testing.T) {
	c := testConfig(t)
	c.write(t, map[string]string{
		"remote_work_policy_2024.txt": "Remote work is allowed.",
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	// Menu intent with no menu documents filters everything out.
	provider.GetMockClassifier().ClassifyFunc = func(ctx context.Context, query string) (core.QueryIntent, error) {
		return core.QueryIntent{Intent: core.DocTypeMenu, Confidence: 5, Reasoning: "test"}, nil
	}

	engine := newTestEngine(t, c, provider)

	_, err := engine.Ingest(context.Background())
	require.NoError(t, err)

	result, err := engine.Query(context.Background(), "what's for lunch?")
	require.NoError(t, err)

	assert.Equal(t, "No relevant documents found to answer your question.", result.Answer)
	assert.Empty(t, result.CitedSources)
	assert.NotNil(t, result.CitedSources)
	assert.Equal(t, 0, provider.GetMockGenerator().CallCount())
}

func TestEngineQueryGenerationFailurePropagates(t *testing.T) {
	c := testConfig(t)
	c.write(t, map[string]string{
		"office_memo_2023.txt": "The office closes early on Fridays.",
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	genErr := errors.New("model unavailable")
	provider.GetMockGenerator().GenerateFunc = func(ctx context.Context, question, contextBlock string) (core.Answer, error) {
		return core.Answer{}, genErr
	}

	engine := newTestEngine(t, c, provider)

	_, err := engine.Ingest(context.Background())
	require.NoError(t, err)

	_, err = engine.Query(context.Background(), "when does the office close?")
	assert.ErrorIs(t, err, genErr)
}

func TestEngineReingest(t *testing.T) {
	c := testConfig(t)
	c.write(t, map[string]string{
		"office_memo_2023.txt": "First corpus.",
	})

	engine := newTestEngine(t, c, mock.NewMockProvider().(*mock.MockProvider))

	count, err := engine.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	c.write(t, map[string]string{
		"cafeteria_menu_2024.txt": "Second corpus.",
	})

	count, err = engine.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
