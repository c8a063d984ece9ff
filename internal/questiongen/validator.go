package questiongen

import (
	"fmt"

	"github.com/abhisek/boardprep/internal/quiz"
)

// Validator checks a generated batch. Implementations are stateless and
// safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in error messages and logs.
	Name() string

	Validate(batch []quiz.Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a batch was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether regenerating is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
