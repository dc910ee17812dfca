package mock

import (
	"context"

	"github.com/poiesic/deskrag/core"
)

// MockAnswerGenerator is a test double for ai.AnswerGenerator.
// It allows custom behavior injection via function fields.
type MockAnswerGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a canned grounded answer.
	GenerateFunc func(ctx context.Context, question, contextBlock string) (core.Answer, error)

	callCount int
}

// NewMockAnswerGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockAnswerGenerator() *MockAnswerGenerator {
	return &MockAnswerGenerator{}
}

// Generate returns a canned answer referencing no sources.
func (m *MockAnswerGenerator) Generate(ctx context.Context, question, contextBlock string) (core.Answer, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, question, contextBlock)
	}

	return core.Answer{
		Answer:       "mock answer",
		Reasoning:    "canned response",
		CitedSources: []string{},
	}, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockAnswerGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockAnswerGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
