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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMetadata indicates a Metadata record failed validation.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidDocType indicates an unknown document type value.
	ErrInvalidDocType = errors.New("invalid document type")

	// ErrInvalidEffectiveDate indicates a missing or unparseable effective date.
	ErrInvalidEffectiveDate = errors.New("invalid effective date")

	// ErrYearMismatch indicates Year does not equal EffectiveDate's year.
	ErrYearMismatch = errors.New("year does not match effective date")

	// ErrNegativeVersion indicates a negative document version.
	ErrNegativeVersion = errors.New("version cannot be negative")

	// ErrEmptySource indicates the Source field is empty.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidIntent indicates a QueryIntent failed validation.
	ErrInvalidIntent = errors.New("invalid query intent")

	// ErrInvalidConfidence indicates a confidence score outside [1,5].
	ErrInvalidConfidence = errors.New("confidence must be between 1 and 5")

	// ErrEmptyAnswer indicates an Answer with no answer text.
	ErrEmptyAnswer = errors.New("answer text cannot be empty")
)
