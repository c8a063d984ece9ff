package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/boardprep/internal/llm"
	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(id string, correct int) map[string]any {
	return map[string]any{
		"id":                 id,
		"question":           "Bihar ki rajdhani kya hai? " + id,
		"options":            []string{"Patna", "Gaya", "Ranchi", "Bhagalpur"},
		"correctAnswerIndex": correct,
		"explanation":        "पटना बिहार की राजधानी है।",
		"difficulty":         "Intermediate",
	}
}

func batchJSON(t *testing.T, qs ...map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(map[string]any{"questions": qs})
	require.NoError(t, err)
	return b
}

func input() GenerateInput {
	return GenerateInput{
		Subject:    quiz.Science,
		Difficulty: quiz.Intermediate,
		Chapter:    "Life Processes (जैव प्रक्रम)",
		Count:      quiz.BatchSize,
	}
}

func TestGenerate_ValidBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(t, question("q1", 0), question("q2", 3)),
	})
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), input())
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "q1", qs[0].ID)
	assert.Equal(t, 3, qs[1].CorrectIndex)
	assert.Equal(t, "Life Processes (जैव प्रक्रम)", qs[0].Chapter, "questions are tagged with the chapter")

	req := mock.LastRequest()
	assert.Equal(t, BatchSchema, req.Schema)
	assert.Contains(t, req.System, "Bihar School Examination Board")
	assert.Equal(t, 8192, req.MaxTokens)
}

func TestGenerate_FillsMissingIDAndDifficulty(t *testing.T) {
	q := question("", 1)
	q["difficulty"] = ""
	q["options"] = []string{" Patna ", "Gaya", "Ranchi", "Bhagalpur"}
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t, q)})

	qs, err := New(mock, DefaultConfig()).Generate(context.Background(), input())
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.NotEmpty(t, qs[0].ID)
	assert.Equal(t, quiz.Intermediate, qs[0].Difficulty)
	assert.Equal(t, "Patna", qs[0].Options[0])
}

func TestGenerate_DefaultsCountAndDifficulty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t, question("q1", 0))})

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), GenerateInput{Subject: quiz.Mathematics})
	require.NoError(t, err)

	msg := mock.LastRequest().Messages[0].Content
	assert.Contains(t, msg, "Generate 10 high-quality MCQ questions")
	assert.Contains(t, msg, "Difficulty Level: Intermediate")
	assert.Contains(t, msg, "for the general subject area")
}

func TestGenerate_EmptyBatchIsNotAnError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})

	qs, err := New(mock, DefaultConfig()).Generate(context.Background(), input())
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestGenerate_RejectsWholeBatch(t *testing.T) {
	threeOptions := question("q2", 0)
	threeOptions["options"] = []string{"a", "b", "c"}

	duplicateOptions := question("q2", 0)
	duplicateOptions["options"] = []string{"Patna", "patna", "Gaya", "Ranchi"}

	outOfRange := question("q2", 0)
	outOfRange["correctAnswerIndex"] = 7

	var tooMany []map[string]any
	for i := range quiz.BatchSize + 1 {
		tooMany = append(tooMany, question(fmt.Sprintf("q%d", i), 0))
	}

	tests := []struct {
		name      string
		batch     []map[string]any
		validator string
	}{
		{"three options", []map[string]any{question("q1", 0), threeOptions}, "structural"},
		{"duplicate options", []map[string]any{question("q1", 0), duplicateOptions}, "structural"},
		{"index out of range", []map[string]any{question("q1", 0), outOfRange}, "structural"},
		{"duplicate ids", []map[string]any{question("q1", 0), question("q1", 1)}, "batch"},
		{"more than requested", tooMany, "batch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t, tt.batch...)})
			qs, err := New(mock, DefaultConfig()).Generate(context.Background(), input())
			assert.Nil(t, qs, "no partial batch")

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.validator, verr.Validator)
			assert.True(t, verr.Retryable)
		})
	}
}

func TestGenerate_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("quota")}})

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), input())
	var rl *llm.ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.True(t, strings.HasPrefix(err.Error(), "LLM generation failed"))
}

func TestGenerate_UnparseableContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[1,2,3]`)})

	_, err := New(mock, DefaultConfig()).Generate(context.Background(), input())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse LLM response")
}

func TestGenerate_KeepsCallerPurpose(t *testing.T) {
	rec := &purposeRecorder{inner: llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t, question("q1", 0))})}

	_, err := New(rec, DefaultConfig()).Generate(llm.WithPurpose(context.Background(), llm.PurposePreview), input())
	require.NoError(t, err)
	assert.Equal(t, llm.PurposePreview, rec.purpose)

	rec.inner.AddResponse(llm.MockResponse{Content: batchJSON(t, question("q1", 0))})
	_, err = New(rec, DefaultConfig()).Generate(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, llm.PurposeQuestionGen, rec.purpose)
}

type purposeRecorder struct {
	inner   *llm.MockProvider
	purpose string
}

func (p *purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purpose = llm.PurposeFrom(ctx)
	return p.inner.Generate(ctx, req)
}

func (p *purposeRecorder) ModelID() string { return p.inner.ModelID() }
