// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.IntentClassifier, ai.AnswerGenerator, and ai.Provider for use in unit
// tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockGenerator := mock.NewMockAnswerGenerator()
//	mockGenerator.GenerateFunc = func(ctx context.Context, question, contextBlock string) (core.Answer, error) {
//	    return core.Answer{Answer: "yes", CitedSources: []string{"policy.txt"}}, nil
//	}
//
//	// Check call counts
//	count := mockGenerator.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockIntentClassifier: Classifies by keyword matching, never errors
//   - MockAnswerGenerator: Returns a canned answer with no citations
//   - MockProvider: Aggregates the three mock services
package mock
