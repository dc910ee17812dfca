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


// Package ai provides abstractions for the AI services used in deskrag.
//
// This package defines interfaces for text embeddings, query intent
// classification and grounded answer generation. It follows the dependency
// inversion principle, allowing retrieval and orchestration logic to depend
// on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - IntentClassifier: Maps a query to a document-type category
//   - AnswerGenerator: Produces a schema-validated, citation-bearing answer
//   - Provider: Aggregates the services for convenient initialization
//
// The two generative services differ deliberately in failure handling.
// IntentClassifier degrades to a safe default, because intent only narrows
// filtering. AnswerGenerator propagates failures, because a fabricated or
// defaulted answer would mislead the user.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types to enable behavior
// injection and call-count assertions in tests.
package ai
