package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "knowledge_base", cfg.Paths.KnowledgeBase)
	assert.Equal(t, "./index_db", cfg.Paths.IndexDir)
	assert.Equal(t, "techcorp_docs", cfg.Paths.Collection)
	assert.Equal(t, 768, cfg.Models.EmbeddingDimension)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 10, cfg.Retrieval.SimilaritySearchK)
	assert.Equal(t, "http://localhost:11434", cfg.Provider.Host)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
paths:
  knowledge_base: /srv/docs
retrieval:
  top_k: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.Paths.KnowledgeBase)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	// Unspecified values fall back to defaults.
	assert.Equal(t, 10, cfg.Retrieval.SimilaritySearchK)
	assert.Equal(t, "qwen2.5:3b", cfg.Models.ChatModel)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: ["), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadResolvesAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv(DefaultAPIKeyEnv, "test-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
}

func TestLoadRequiredAPIKeyMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider:
  api_key_env: DESKRAG_TEST_MISSING_KEY
  require_api_key: true
`), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty knowledge base", func(c *Config) { c.Paths.KnowledgeBase = "" }, true},
		{"empty index dir", func(c *Config) { c.Paths.IndexDir = "" }, true},
		{"zero dimension", func(c *Config) { c.Models.EmbeddingDimension = 0 }, true},
		{"zero top_k", func(c *Config) { c.Retrieval.TopK = 0 }, true},
		{"search_k below top_k", func(c *Config) { c.Retrieval.SimilaritySearchK = 2 }, true},
		{"required key missing", func(c *Config) { c.Provider.RequireAPIKey = true }, true},
		{"required key present", func(c *Config) {
			c.Provider.RequireAPIKey = true
			c.APIKey = "key"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
