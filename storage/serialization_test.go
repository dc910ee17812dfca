package storage

import (
	"testing"
	"time"

	"github.com/poiesic/deskrag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("cafeteria_menu_2024.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}

	t.Run("empty data", func(t *testing.T) {
		_, err := UnmarshalID([]byte{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			name: "document without vector",
			doc: &core.Document{
				Id:      core.IDFromContent("memo_june.txt"),
				Source:  "memo_june.txt",
				Content: "The office closes early on Friday.",
				Metadata: core.Metadata{
					Source:        "memo_june.txt",
					DocType:       core.DocTypeMemo,
					EffectiveDate: date,
					Year:          2024,
					Version:       0,
				},
			},
		},
		{
			name: "document with vector",
			doc: &core.Document{
				Id:      core.IDFromContent("remote_work_policy_v2_2024.txt"),
				Source:  "remote_work_policy_v2_2024.txt",
				Content: "Employees may work remotely up to 3 days per week.",
				Metadata: core.Metadata{
					Source:        "remote_work_policy_v2_2024.txt",
					DocType:       core.DocTypePolicy,
					EffectiveDate: date,
					Year:          2024,
					Version:       2,
				},
				Vector: []float32{0.25, -0.5, 0.125, 1.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)
			assert.Equal(t, tt.doc.Id, decoded.Id)
			assert.Equal(t, tt.doc.Source, decoded.Source)
			assert.Equal(t, tt.doc.Content, decoded.Content)
			assert.Equal(t, tt.doc.Metadata.DocType, decoded.Metadata.DocType)
			assert.True(t, tt.doc.Metadata.EffectiveDate.Equal(decoded.Metadata.EffectiveDate))
			assert.Equal(t, tt.doc.Metadata.Year, decoded.Metadata.Year)
			assert.Equal(t, tt.doc.Metadata.Version, decoded.Metadata.Version)
			assert.Equal(t, tt.doc.Vector, decoded.Vector)
		})
	}

	t.Run("truncated data", func(t *testing.T) {
		doc := tests[1].doc
		data := MarshalDocument(doc)
		_, err := UnmarshalDocument(data[:len(data)/2])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}
