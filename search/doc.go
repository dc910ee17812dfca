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


// Package search provides intent-aware document retrieval.
//
// The Retriever type implements a multi-stage retrieval algorithm:
//   - Semantic search using vector embeddings, over-fetched past the
//     final result size
//   - Query intent classification (policy, menu, memo, general)
//   - Intent filtering with policy conflict resolution: when several
//     policy documents compete, only the latest (year, version) survives
//
// Retrieval results are the authoritative document set for grounded answer
// generation. Similarity ranking decides membership in the candidate pool;
// document metadata decides what survives filtering.
package search
