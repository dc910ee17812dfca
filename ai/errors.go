package ai

import "errors"

var (
	// ErrGenerationFailed indicates the generative provider call failed.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidResponse indicates the provider returned a response that
	// does not satisfy the expected schema.
	ErrInvalidResponse = errors.New("schema-invalid model response")

	// ErrNoChoices indicates the provider returned an empty choice list.
	ErrNoChoices = errors.New("model returned no choices")
)
