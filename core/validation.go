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


package core

import "fmt"

// ValidateMetadata validates a Metadata record according to domain rules.
//
// Validation rules:
//   - Source must not be empty
//   - DocType must be one of the four enumerated values
//   - EffectiveDate must be set (a document never reaches the index
//     without a best-effort date)
//   - Year must equal EffectiveDate's year
//   - Version must be >= 0
func ValidateMetadata(meta *Metadata) error {
	if meta == nil {
		return fmt.Errorf("%w: metadata is nil", ErrInvalidMetadata)
	}

	if meta.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, ErrEmptySource)
	}

	if err := ValidateDocType(meta.DocType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}

	if meta.EffectiveDate.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, ErrInvalidEffectiveDate)
	}

	if meta.Year != meta.EffectiveDate.Year() {
		return fmt.Errorf("%w: %w: year=%d date=%s",
			ErrInvalidMetadata, ErrYearMismatch, meta.Year, meta.EffectiveDate.Format("2006-01-02"))
	}

	if meta.Version < 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidMetadata, ErrNegativeVersion, meta.Version)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Metadata must validate (see ValidateMetadata)
//
// NOT validated:
//   - Vector (can be empty until the embedding step runs)
//   - ID (derived from Source at ingestion)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	if err := ValidateMetadata(&doc.Metadata); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateDocType validates that a DocType has a valid value.
func ValidateDocType(t DocType) error {
	switch t {
	case DocTypePolicy, DocTypeMenu, DocTypeMemo, DocTypeGeneral:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidDocType, t)
}

// ValidateQueryIntent validates a QueryIntent.
//
// Validation rules:
//   - Intent must be a valid DocType
//   - Confidence must be in [1,5]
func ValidateQueryIntent(intent *QueryIntent) error {
	if intent == nil {
		return fmt.Errorf("%w: intent is nil", ErrInvalidIntent)
	}

	if err := ValidateDocType(intent.Intent); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}

	if intent.Confidence < 1 || intent.Confidence > 5 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidIntent, ErrInvalidConfidence, intent.Confidence)
	}

	return nil
}

// ValidateAnswer validates an Answer returned by the generative model.
// A structurally invalid answer is a hard failure for the query; it is
// never silently defaulted.
func ValidateAnswer(answer *Answer) error {
	if answer == nil {
		return fmt.Errorf("%w: answer is nil", ErrEmptyAnswer)
	}
	if answer.Answer == "" {
		return ErrEmptyAnswer
	}
	return nil
}
