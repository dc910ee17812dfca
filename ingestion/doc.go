// Package ingestion provides the corpus indexing pipeline.
//
// The Pipeline type manages the ingestion workflow for a directory of text
// documents, including:
//   - Listing and reading the knowledge-base corpus
//   - Extracting metadata (type, effective date, version) per document
//   - Generating embeddings concurrently via a worker pool
//   - Building the search index in a temp directory and swapping it in
//
// A document that fails any step is logged and skipped; the run fails only
// when the corpus is missing, empty, or nothing survives processing. Index
// replacement is all-or-nothing, so a failed run leaves the previous index
// untouched.
package ingestion
