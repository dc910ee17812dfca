package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/deskrag/ai"
	"github.com/poiesic/deskrag/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// AnswerGenerator implements ai.AnswerGenerator using OpenAI-compatible
// chat APIs.
type AnswerGenerator struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// answerResponse matches the JSON structure the model is instructed to emit.
type answerResponse struct {
	Answer             string   `json:"answer"`
	Reasoning          string   `json:"reasoning"`
	CitedSources       []string `json:"cited_sources"`
	PolicyAllowsRemote *bool    `json:"policy_allows_remote"`
}

// newAnswerGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnswerGenerator(config *ai.Config) (*AnswerGenerator, error) {
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

	return &AnswerGenerator{
		client:      client,
		temperature: config.AnswerTemperature,
		logger:      slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewAnswerGenerator creates a new answer generator using the provided
// configuration.
//
// Returns ai.AnswerGenerator interface to enforce abstraction.
func NewAnswerGenerator(config *ai.Config) (ai.AnswerGenerator, error) {
	return newAnswerGenerator(config)
}

// Generate produces a grounded answer to the question from the supplied
// document context. Unlike classification, generation failures propagate
// to the caller: a degraded answer would be presented to the user as fact.
func (g *AnswerGenerator) Generate(ctx context.Context, question, contextBlock string) (core.Answer, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildAnswerPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildAnswerRequest(question, contextBlock)),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(g.temperature), llms.WithJSONMode())
	if err != nil {
		g.logger.Error("failed to generate answer", "err", err)
		return core.Answer{}, fmt.Errorf("%w: %w", ai.ErrGenerationFailed, err)
	}

	if len(response.Choices) < 1 {
		g.logger.Error("no choices returned from model")
		return core.Answer{}, fmt.Errorf("%w: %w", ai.ErrGenerationFailed, ai.ErrNoChoices)
	}

	responseText := repairJSON(stripCodeFences(response.Choices[0].Content))

	var parsed answerResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		g.logger.Error("error parsing answer response", "response", responseText, "err", err)
		return core.Answer{}, fmt.Errorf("%w: %w", ai.ErrInvalidResponse, err)
	}

	answer := core.Answer{
		Answer:             parsed.Answer,
		Reasoning:          parsed.Reasoning,
		CitedSources:       parsed.CitedSources,
		PolicyAllowsRemote: parsed.PolicyAllowsRemote,
	}
	if answer.CitedSources == nil {
		answer.CitedSources = []string{}
	}
	if err := core.ValidateAnswer(&answer); err != nil {
		g.logger.Error("model returned schema-invalid answer", "err", err)
		return core.Answer{}, fmt.Errorf("%w: %w", ai.ErrInvalidResponse, err)
	}

	g.logger.Debug("generated answer",
		"cited", len(answer.CitedSources),
		"length", len(answer.Answer))
	return answer, nil
}
