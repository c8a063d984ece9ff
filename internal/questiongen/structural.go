package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/boardprep/internal/quiz"
)

const (
	maxPromptLen      = 600
	maxExplanationLen = 2000
)

// StructuralValidator checks every question's invariants, length limits
// and that its options are distinct.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(batch []quiz.Question, _ GenerateInput) *ValidationError {
	for i, q := range batch {
		if msg := checkQuestion(q); msg != "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: %s", i+1, msg),
				Retryable: true,
			}
		}
	}
	return nil
}

func checkQuestion(q quiz.Question) string {
	if err := q.Validate(); err != nil {
		return err.Error()
	}
	if len(q.Prompt) > maxPromptLen {
		return fmt.Sprintf("question text exceeds %d bytes", maxPromptLen)
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return "explanation is empty"
	}
	if len(q.Explanation) > maxExplanationLen {
		return fmt.Sprintf("explanation exceeds %d bytes", maxExplanationLen)
	}

	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if seen[key] {
			return fmt.Sprintf("duplicate option %q", opt)
		}
		seen[key] = true
	}
	return ""
}

// BatchValidator checks batch-level properties: unique IDs and no more
// questions than requested.
type BatchValidator struct{}

func (v *BatchValidator) Name() string { return "batch" }

func (v *BatchValidator) Validate(batch []quiz.Question, input GenerateInput) *ValidationError {
	if input.Count > 0 && len(batch) > input.Count {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, requested %d", len(batch), input.Count),
			Retryable: true,
		}
	}

	ids := make(map[string]bool, len(batch))
	for _, q := range batch {
		if ids[q.ID] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate question id %q", q.ID),
				Retryable: true,
			}
		}
		ids[q.ID] = true
	}
	return nil
}
