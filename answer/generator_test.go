package answer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/deskrag/ai/mock"
	"github.com/poiesic/deskrag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(source string, docType core.DocType, year, version int) *core.Document {
	return &core.Document{
		Id:      core.IDFromContent(source),
		Source:  source,
		Content: "content of " + source,
		Metadata: core.Metadata{
			Source:        source,
			DocType:       docType,
			EffectiveDate: time.Date(year, time.March, 15, 0, 0, 0, 0, time.UTC),
			Year:          year,
			Version:       version,
		},
	}
}

func TestBuildContext(t *testing.T) {
	docs := []*core.Document{
		testDoc("remote_work_policy_v2_2024.txt", core.DocTypePolicy, 2024, 2),
		testDoc("cafeteria_menu_2024.txt", core.DocTypeMenu, 2024, 0),
	}

	block := BuildContext(docs)

	assert.Contains(t, block, "=== Document: remote_work_policy_v2_2024.txt ===")
	assert.Contains(t, block, "=== Document: cafeteria_menu_2024.txt ===")
	assert.Contains(t, block, "Type: policy")
	assert.Contains(t, block, "Year: 2024")
	assert.Contains(t, block, "Version: 2")
	assert.Contains(t, block, "Effective Date: 2024-03-15")
	assert.Contains(t, block, "content of remote_work_policy_v2_2024.txt")
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Empty(t, BuildContext(nil))
}

func TestGenerateKeepsValidCitations(t *testing.T) {
	docs := []*core.Document{
		testDoc("remote_work_policy_2024.txt", core.DocTypePolicy, 2024, 1),
	}

	inner := mock.NewMockAnswerGenerator()
	inner.GenerateFunc = func(ctx context.Context, question, contextBlock string) (core.Answer, error) {
		// The model cites one real document and hallucinates another.
		return core.Answer{
			Answer:       "Remote work is allowed up to 3 days per week.",
			Reasoning:    "stated in the 2024 policy",
			CitedSources: []string{"remote_work_policy_2024.txt", "imaginary_policy.txt"},
		}, nil
	}

	g, err := NewGenerator(inner)
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), "can I work remote?", docs)
	require.NoError(t, err)

	assert.Equal(t, []string{"remote_work_policy_2024.txt"}, result.CitedSources)
	assert.Equal(t, "Remote work is allowed up to 3 days per week.", result.Answer)
}

func TestGeneratePassesContextToModel(t *testing.T) {
	docs := []*core.Document{
		testDoc("office_memo_2023.txt", core.DocTypeMemo, 2023, 0),
	}

	var seenQuestion, seenContext string
	inner := mock.NewMockAnswerGenerator()
	inner.GenerateFunc = func(ctx context.Context, question, contextBlock string) (core.Answer, error) {
		seenQuestion = question
		seenContext = contextBlock
		return core.Answer{Answer: "ok", CitedSources: []string{}}, nil
	}

	g, err := NewGenerator(inner)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "office hours?", docs)
	require.NoError(t, err)

	assert.Equal(t, "office hours?", seenQuestion)
	assert.Contains(t, seenContext, "=== Document: office_memo_2023.txt ===")
}

func TestGeneratePropagatesErrors(t *testing.T) {
	inner := mock.NewMockAnswerGenerator()
	modelErr := errors.New("model unavailable")
	inner.GenerateFunc = func(ctx context.Context, question, contextBlock string) (core.Answer, error) {
		return core.Answer{}, modelErr
	}

	g, err := NewGenerator(inner)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "anything?", nil)
	assert.ErrorIs(t, err, modelErr)
}

func TestNewGeneratorValidation(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}
