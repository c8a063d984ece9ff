package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/boardprep/internal/llm"
	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/google/uuid"
)

// LLMGenerator implements Generator on an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []quiz.Question `json:"questions"`
}

// Generate requests one batch and validates it as a whole.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	if input.Difficulty == "" {
		input.Difficulty = quiz.RemoteDifficulty
	}
	if input.Count <= 0 {
		input.Count = quiz.BatchSize
	}
	if llm.PurposeFrom(ctx) == "unknown" {
		ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	batch := normalize(raw.Questions, input)
	for _, v := range g.config.Validators {
		if verr := v.Validate(batch, input); verr != nil {
			return nil, verr
		}
	}
	return batch, nil
}

// normalize trims model output, fills missing IDs and difficulty, and tags
// every question with the requested chapter.
func normalize(questions []quiz.Question, input GenerateInput) []quiz.Question {
	out := make([]quiz.Question, 0, len(questions))
	for _, q := range questions {
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.Prompt = strings.TrimSpace(q.Prompt)
		q.Explanation = strings.TrimSpace(q.Explanation)
		if q.Difficulty == "" {
			q.Difficulty = input.Difficulty
		}
		if q.Chapter == "" {
			q.Chapter = input.Chapter
		}
		opts := make([]string, len(q.Options))
		for i, o := range q.Options {
			opts[i] = strings.TrimSpace(o)
		}
		q.Options = opts
		out = append(out, q)
	}
	return out
}
