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


package search

import "github.com/poiesic/deskrag/core"

// FilterByIntent narrows retrieved candidates using the classified query
// intent and resolves conflicts between policy documents.
//
// Behavior per intent:
//   - menu: only menu documents survive; an empty result is valid.
//   - memo: only memo documents survive.
//   - policy: only policy documents survive, reduced to the latest one.
//   - general: all documents survive, with policy documents reduced to the
//     latest one.
//
// The function is pure and deterministic given its inputs, and idempotent:
// applying it to its own output returns the same documents.
func FilterByIntent(docs []*core.Document, intent core.QueryIntent) []*core.Document {
	switch intent.Intent {
	case core.DocTypeMenu:
		return filterType(docs, core.DocTypeMenu)
	case core.DocTypeMemo:
		return filterType(docs, core.DocTypeMemo)
	case core.DocTypePolicy:
		return latestPolicy(filterType(docs, core.DocTypePolicy))
	default:
		return latestPolicy(docs)
	}
}

func filterType(docs []*core.Document, docType core.DocType) []*core.Document {
	filtered := make([]*core.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Metadata.DocType == docType {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

// latestPolicy resolves conflicts between policy documents: when more than
// one policy document is present, only the one with the highest (year,
// version) pair survives. Non-policy documents pass through unchanged and
// are never compared to each other.
//
// The winner is selected by a strict > scan in input order, so a later
// document with an equal (year, version) pair never replaces an earlier
// one. The winning policy is placed first in the result.
func latestPolicy(docs []*core.Document) []*core.Document {
	if len(docs) == 0 {
		return []*core.Document{}
	}

	policyDocs := make([]*core.Document, 0, len(docs))
	otherDocs := make([]*core.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Metadata.DocType == core.DocTypePolicy {
			policyDocs = append(policyDocs, doc)
		} else {
			otherDocs = append(otherDocs, doc)
		}
	}

	// A single policy cannot conflict with anything.
	if len(policyDocs) <= 1 {
		return docs
	}

	var winner *core.Document
	latestYear, latestVersion := 0, 0
	for _, doc := range policyDocs {
		year := doc.Metadata.Year
		version := doc.Metadata.Version
		if (year > latestYear) || (year == latestYear && version > latestVersion) {
			winner = doc
			latestYear = year
			latestVersion = version
		}
	}

	result := make([]*core.Document, 0, len(otherDocs)+1)
	result = append(result, winner)
	result = append(result, otherDocs...)
	return result
}
