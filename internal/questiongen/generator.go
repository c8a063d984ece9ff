package questiongen

import (
	"context"

	"github.com/abhisek/boardprep/internal/quiz"
)

// Generator produces a batch of multiple-choice questions.
type Generator interface {
	// Generate returns a validated batch or an error; it never returns a
	// partially valid batch.
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}

// GenerateInput holds everything needed to request a batch.
type GenerateInput struct {
	Subject    quiz.Subject
	Difficulty quiz.Difficulty

	// Chapter narrows the batch to one chapter. Empty means the whole
	// subject ("Today's Mix").
	Chapter string

	// Count is the number of questions requested.
	Count int
}
