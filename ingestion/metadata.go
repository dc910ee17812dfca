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


package ingestion

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/deskrag/core"
)

var (
	filenameYearPattern = regexp.MustCompile(`_(\d{4})\.\w+$`)
	versionPattern      = regexp.MustCompile(`_v(\d+)_`)
)

// datePatterns are tried against document content in order. The first
// matching, parseable date wins.
var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`Effective Date:\s*([A-Za-z]+\s+\d{1,2},\s*\d{4})`), "Jan 2, 2006"},
	{regexp.MustCompile(`Effective Date:\s*(\d{4}-\d{2}-\d{2})`), "2006-01-02"},
}

// ModTimeFunc reports the modification time of a corpus file. It is the
// injected fallback date source; tests substitute a fixed clock.
type ModTimeFunc func(filename string) (time.Time, error)

// MetadataExtractor derives document metadata from filename and content.
//
// Extraction is deterministic given the same filename and content, except
// for the modification-time fallback, which only applies when neither the
// filename nor the content carries a date.
type MetadataExtractor struct {
	modTime ModTimeFunc
	logger  *slog.Logger
}

// NewMetadataExtractor creates an extractor. modTime may be nil, in which
// case the date fallback is unavailable and undated documents fail extraction.
func NewMetadataExtractor(modTime ModTimeFunc) *MetadataExtractor {
	return &MetadataExtractor{
		modTime: modTime,
		logger:  slog.Default().With("component", "metadata-extractor"),
	}
}

// Extract derives metadata for a single document. The returned metadata
// always satisfies core.ValidateMetadata; any rule violation is reported as
// a per-document error and never panics.
func (e *MetadataExtractor) Extract(filename, content string) (core.Metadata, error) {
	meta := core.Metadata{
		Source:  filename,
		DocType: classifyDocType(filename),
		Version: extractVersion(filename),
	}

	date, err := e.extractDate(filename, content)
	if err != nil {
		return core.Metadata{}, err
	}
	meta.EffectiveDate = date
	meta.Year = date.Year()

	if err := core.ValidateMetadata(&meta); err != nil {
		return core.Metadata{}, err
	}
	return meta, nil
}

// classifyDocType maps filename substrings to a document type.
// Precedence is fixed: policy, then menu, then memo.
func classifyDocType(filename string) core.DocType {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "policy"):
		return core.DocTypePolicy
	case strings.Contains(lower, "menu"), strings.Contains(lower, "cafeteria"):
		return core.DocTypeMenu
	case strings.Contains(lower, "memo"):
		return core.DocTypeMemo
	default:
		return core.DocTypeGeneral
	}
}

// extractDate resolves the effective date: filename year first, content
// "Effective Date:" line second, file modification time last.
func (e *MetadataExtractor) extractDate(filename, content string) (time.Time, error) {
	if m := filenameYearPattern.FindStringSubmatch(filename); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
		}
	}

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		date, err := time.Parse(p.layout, m[1])
		if err != nil {
			continue
		}
		return date.UTC(), nil
	}

	if e.modTime == nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingDate, filename)
	}

	mtime, err := e.modTime(filename)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", ErrMissingDate, filename, err)
	}
	e.logger.Warn("no date found, falling back to file modification time",
		"file", filename, "mtime", mtime.Format("2006-01-02"))
	return mtime.UTC(), nil
}

// extractVersion parses the _v<digits>_ filename marker. Absent marker
// means version 0.
func extractVersion(filename string) int {
	if m := versionPattern.FindStringSubmatch(filename); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v
		}
	}
	return 0
}
