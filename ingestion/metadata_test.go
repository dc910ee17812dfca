package ingestion

import (
	"errors"
	"testing"
	"time"

	"github.com/poiesic/deskrag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedModTime(t time.Time) ModTimeFunc {
	return func(string) (time.Time, error) {
		return t, nil
	}
}

func TestClassifyDocType(t *testing.T) {
	tests := []struct {
		filename string
		expected core.DocType
	}{
		{"remote_work_policy_v2_2024.txt", core.DocTypePolicy},
		{"cafeteria_menu_2024.txt", core.DocTypeMenu},
		{"menu_week_12.txt", core.DocTypeMenu},
		{"office_memo_2023.txt", core.DocTypeMemo},
		{"employee_handbook_2022.txt", core.DocTypeGeneral},
		{"POLICY_UPPERCASE.txt", core.DocTypePolicy},
		// policy wins over menu when both appear
		{"cafeteria_policy_2024.txt", core.DocTypePolicy},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyDocType(tt.filename))
		})
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		filename string
		expected int
	}{
		{"handbook_v3_2022.txt", 3},
		{"remote_work_policy_v2_2024.txt", 2},
		{"remote_work_policy_v12_2024.txt", 12},
		{"office_memo_2023.txt", 0},
		// marker needs both surrounding underscores
		{"policy_v2.txt", 0},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractVersion(tt.filename))
		})
	}
}

func TestExtractDateFromFilename(t *testing.T) {
	e := NewMetadataExtractor(nil)

	meta, err := e.Extract("handbook_v3_2022.txt", "no dates in here")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), meta.EffectiveDate)
	assert.Equal(t, 2022, meta.Year)
	assert.Equal(t, 3, meta.Version)
	assert.Equal(t, core.DocTypeGeneral, meta.DocType)
}

func TestExtractDateFromContent(t *testing.T) {
	e := NewMetadataExtractor(nil)

	tests := []struct {
		name     string
		content  string
		expected time.Time
	}{
		{
			name:     "month name layout",
			content:  "TechCorp Remote Work Policy\nEffective Date: Mar 15, 2024\n\nAll employees...",
			expected: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "iso layout",
			content:  "Effective Date: 2023-06-01\nCafeteria hours...",
			expected: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := e.Extract("remote_work_policy.txt", tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, meta.EffectiveDate)
			assert.Equal(t, tt.expected.Year(), meta.Year)
		})
	}
}

func TestExtractFilenameYearBeatsContentDate(t *testing.T) {
	e := NewMetadataExtractor(nil)

	meta, err := e.Extract("policy_2024.txt", "Effective Date: 2020-05-05")
	require.NoError(t, err)

	assert.Equal(t, 2024, meta.Year)
	assert.Equal(t, time.January, meta.EffectiveDate.Month())
}

func TestExtractModTimeFallback(t *testing.T) {
	mtime := time.Date(2023, time.September, 9, 12, 30, 0, 0, time.UTC)
	e := NewMetadataExtractor(fixedModTime(mtime))

	meta, err := e.Extract("policy_undated.txt", "no dates anywhere")
	require.NoError(t, err)

	assert.Equal(t, mtime, meta.EffectiveDate)
	assert.Equal(t, 2023, meta.Year)
}

func TestExtractNoDateNoFallback(t *testing.T) {
	e := NewMetadataExtractor(nil)

	_, err := e.Extract("policy_undated.txt", "no dates anywhere")
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestExtractModTimeError(t *testing.T) {
	e := NewMetadataExtractor(func(string) (time.Time, error) {
		return time.Time{}, errors.New("stat failed")
	})

	_, err := e.Extract("policy_undated.txt", "no dates anywhere")
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestExtractUnparseableContentDateFallsThrough(t *testing.T) {
	mtime := time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)
	e := NewMetadataExtractor(fixedModTime(mtime))

	// Matches the month-name pattern but is not a real date.
	meta, err := e.Extract("policy_undated.txt", "Effective Date: Foo 99, 2024")
	require.NoError(t, err)
	assert.Equal(t, mtime, meta.EffectiveDate)
}

func TestExtractYearMatchesDate(t *testing.T) {
	e := NewMetadataExtractor(nil)

	meta, err := e.Extract("remote_work_policy_v2_2024.txt", "irrelevant")
	require.NoError(t, err)
	require.NoError(t, core.ValidateMetadata(&meta))
	assert.Equal(t, meta.EffectiveDate.Year(), meta.Year)
}
