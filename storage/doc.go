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


// Package storage defines the document index abstraction and its
// serialization format.
//
// The DocumentRepository interface decouples retrieval and ingestion from
// the concrete backend. The storage/badger sub-package provides the
// production implementation.
//
// Documents are serialized with the MUS binary format for compact storage
// of embedding vectors alongside document text and metadata.
package storage
