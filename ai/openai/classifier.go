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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/poiesic/deskrag/ai"
	"github.com/poiesic/deskrag/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentClassifier implements ai.IntentClassifier using OpenAI-compatible
// chat APIs.
type IntentClassifier struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// intentResponse matches the JSON structure the model is instructed to emit.
type intentResponse struct {
	Intent     string `json:"intent"`
	Reasoning  string `json:"reasoning"`
	Confidence int    `json:"confidence"`
}

// newIntentClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentClassifier(config *ai.Config) (*IntentClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentClassifier{
		client:      client,
		temperature: config.IntentTemperature,
		logger:      slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewIntentClassifier creates a new intent classifier using the provided
// configuration.
//
// Returns ai.IntentClassifier interface to enforce abstraction.
func NewIntentClassifier(config *ai.Config) (ai.IntentClassifier, error) {
	return newIntentClassifier(config)
}

// Classify determines what document type would best answer the query.
//
// Classification never fails the caller's query: when the model cannot be
// reached or keeps returning unparseable output, a degraded general intent
// with minimum confidence is returned with a nil error.
func (c *IntentClassifier) Classify(ctx context.Context, query string) (core.QueryIntent, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildIntentPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var parsed intentResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content,
			llms.WithTemperature(c.temperature), llms.WithJSONMode())
		if err != nil {
			c.logger.Warn("intent classification failed, defaulting to general",
				"attempt", attempt+1, "err", err)
			return core.DefaultIntent("Failed to classify"), nil
		}

		if len(response.Choices) < 1 {
			c.logger.Warn("no choices returned from model, defaulting to general")
			return core.DefaultIntent("Failed to classify"), nil
		}

		responseText := repairJSON(stripCodeFences(response.Choices[0].Content))

		if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
			lastErr = err
			c.logger.Warn("error parsing intent response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Warn("failed to parse intent response after retries, defaulting to general",
			"err", lastErr)
		return core.DefaultIntent("Failed to classify"), nil
	}

	docType, err := core.ParseDocType(parsed.Intent)
	if err != nil {
		c.logger.Warn("model returned unknown intent, defaulting to general",
			"intent", parsed.Intent)
		return core.DefaultIntent("Failed to classify"), nil
	}

	intent := core.QueryIntent{
		Intent:     docType,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}
	if err := core.ValidateQueryIntent(&intent); err != nil {
		c.logger.Warn("model returned invalid intent, defaulting to general",
			"err", err)
		return core.DefaultIntent("Failed to classify"), nil
	}

	c.logger.Debug("classified query intent",
		"intent", intent.Intent,
		"confidence", intent.Confidence)
	return intent, nil
}
