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


package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIKeyEnv is the environment variable consulted for the provider
// API key when the config file does not name one.
const DefaultAPIKeyEnv = "DESKRAG_API_KEY"

// ErrConfiguration marks fatal configuration problems. Startup aborts on
// any error wrapping it.
var ErrConfiguration = errors.New("configuration error")

// PathsConfig holds corpus and index locations.
type PathsConfig struct {
	KnowledgeBase string `yaml:"knowledge_base"`
	IndexDir      string `yaml:"index_dir"`
	Collection    string `yaml:"collection"`
}

// ModelsConfig holds model identifiers and generation parameters.
type ModelsConfig struct {
	EmbeddingModel     string  `yaml:"embedding_model"`
	EmbeddingDimension int     `yaml:"embedding_dimension"`
	ChatModel          string  `yaml:"chat_model"`
	TemperatureIntent  float64 `yaml:"temperature_intent"`
	TemperatureAnswer  float64 `yaml:"temperature_answer"`
}

// RetrievalConfig holds the two retrieval fan-out values: a larger pool is
// fetched by similarity, then pruned to the top-K.
type RetrievalConfig struct {
	TopK              int `yaml:"top_k"`
	SimilaritySearchK int `yaml:"similarity_search_k"`
}

// ProviderConfig holds connection details for the OpenAI-compatible service.
type ProviderConfig struct {
	Host          string `yaml:"host"`
	APIKeyEnv     string `yaml:"api_key_env"`
	RequireAPIKey bool   `yaml:"require_api_key"`
}

// Config is the root application configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Models    ModelsConfig    `yaml:"models"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Provider  ProviderConfig  `yaml:"provider"`

	// APIKey is resolved from the environment, never from the yaml file.
	APIKey string `yaml:"-"`
}

// Load reads a config from the specified path. A missing file yields the
// defaults; a present but unreadable or malformed file is an error. The
// provider API key is resolved from the environment, with .env honored via
// godotenv when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
		}
	}

	applyDefaults(cfg)

	// .env is optional; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: loading .env: %w", ErrConfiguration, err)
	}
	cfg.APIKey = os.Getenv(cfg.Provider.APIKeyEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			KnowledgeBase: "knowledge_base",
			IndexDir:      "./index_db",
			Collection:    "techcorp_docs",
		},
		Models: ModelsConfig{
			EmbeddingModel:     "embeddinggemma",
			EmbeddingDimension: 768,
			ChatModel:          "qwen2.5:3b",
			TemperatureIntent:  0.0,
			TemperatureAnswer:  0.5,
		},
		Retrieval: RetrievalConfig{
			TopK:              5,
			SimilaritySearchK: 10,
		},
		Provider: ProviderConfig{
			Host:      "http://localhost:11434",
			APIKeyEnv: DefaultAPIKeyEnv,
		},
	}
}

// applyDefaults fills zero values left by a partial yaml file.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Paths.KnowledgeBase == "" {
		cfg.Paths.KnowledgeBase = def.Paths.KnowledgeBase
	}
	if cfg.Paths.IndexDir == "" {
		cfg.Paths.IndexDir = def.Paths.IndexDir
	}
	if cfg.Paths.Collection == "" {
		cfg.Paths.Collection = def.Paths.Collection
	}
	if cfg.Models.EmbeddingModel == "" {
		cfg.Models.EmbeddingModel = def.Models.EmbeddingModel
	}
	if cfg.Models.EmbeddingDimension == 0 {
		cfg.Models.EmbeddingDimension = def.Models.EmbeddingDimension
	}
	if cfg.Models.ChatModel == "" {
		cfg.Models.ChatModel = def.Models.ChatModel
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.SimilaritySearchK == 0 {
		cfg.Retrieval.SimilaritySearchK = def.Retrieval.SimilaritySearchK
	}
	if cfg.Provider.Host == "" {
		cfg.Provider.Host = def.Provider.Host
	}
	if cfg.Provider.APIKeyEnv == "" {
		cfg.Provider.APIKeyEnv = def.Provider.APIKeyEnv
	}
}

// Validate reports fatal configuration problems.
func (c *Config) Validate() error {
	if c.Paths.KnowledgeBase == "" {
		return fmt.Errorf("%w: knowledge base path is required", ErrConfiguration)
	}
	if c.Paths.IndexDir == "" {
		return fmt.Errorf("%w: index directory is required", ErrConfiguration)
	}
	if c.Models.EmbeddingDimension <= 0 {
		return fmt.Errorf("%w: embedding dimension must be positive", ErrConfiguration)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1", ErrConfiguration)
	}
	if c.Retrieval.SimilaritySearchK < c.Retrieval.TopK {
		return fmt.Errorf("%w: similarity_search_k must be at least top_k", ErrConfiguration)
	}
	if c.Provider.RequireAPIKey && c.APIKey == "" {
		return fmt.Errorf("%w: %s not set in environment (create a .env file with %s=your_key)",
			ErrConfiguration, c.Provider.APIKeyEnv, c.Provider.APIKeyEnv)
	}
	return nil
}
