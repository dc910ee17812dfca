package mock

import (
	"context"
	"strings"

	"github.com/poiesic/deskrag/core"
)

// MockIntentClassifier is a test double for ai.IntentClassifier.
// It allows custom behavior injection via function fields.
type MockIntentClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default keyword-based classification.
	ClassifyFunc func(ctx context.Context, query string) (core.QueryIntent, error)

	callCount int
}

// NewMockIntentClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockIntentClassifier() *MockIntentClassifier {
	return &MockIntentClassifier{}
}

// Classify performs a crude keyword classification of the query.
// Default behavior mirrors the production contract: it never returns an error.
func (m *MockIntentClassifier) Classify(ctx context.Context, query string) (core.QueryIntent, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, query)
	}

	lower := strings.ToLower(query)
	switch {
	case containsAny(lower, "policy", "remote", "vacation", "allowed", "benefit"):
		return core.QueryIntent{Intent: core.DocTypePolicy, Confidence: 4, Reasoning: "keyword match"}, nil
	case containsAny(lower, "lunch", "menu", "food", "cafeteria", "breakfast", "dinner"):
		return core.QueryIntent{Intent: core.DocTypeMenu, Confidence: 4, Reasoning: "keyword match"}, nil
	case containsAny(lower, "memo", "announcement", "notice", "update"):
		return core.QueryIntent{Intent: core.DocTypeMemo, Confidence: 4, Reasoning: "keyword match"}, nil
	default:
		return core.QueryIntent{Intent: core.DocTypeGeneral, Confidence: 2, Reasoning: "no keyword match"}, nil
	}
}

// CallCount returns the number of times Classify was called.
func (m *MockIntentClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
