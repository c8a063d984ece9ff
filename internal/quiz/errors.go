package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestionsAvailable means the provider produced an empty batch.
	ErrNoQuestionsAvailable = errors.New("no questions available for this topic")

	// ErrNoActiveSession means the operation needs an in-progress session.
	ErrNoActiveSession = errors.New("no active quiz session")

	// ErrAlreadyAnswered means the current question already has an answer.
	ErrAlreadyAnswered = errors.New("current question already answered")

	// ErrNotAnswered means the current question must be answered first.
	ErrNotAnswered = errors.New("current question not answered yet")

	// ErrInvalidOption means the selected option index is out of range.
	ErrInvalidOption = errors.New("option index out of range")

	// ErrGenerationInProgress means a quiz start is already pending.
	ErrGenerationInProgress = errors.New("questions are already being generated")

	// ErrStaleRequest means a start request was cancelled or superseded.
	ErrStaleRequest = errors.New("quiz start request is no longer current")
)

// ProviderError wraps a failure of the remote question generator.
type ProviderError struct {
	Subject Subject
	Chapter string
	Err     error
}

func (e *ProviderError) Error() string {
	topic := string(e.Subject)
	if e.Chapter != "" {
		topic = e.Chapter
	}
	if e.Err != nil {
		return fmt.Sprintf("question provider failed for %s: %v", topic, e.Err)
	}
	return fmt.Sprintf("question provider failed for %s", topic)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// CorruptRecordError describes a persisted record that could not be decoded.
type CorruptRecordError struct {
	Key string
	Err error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt persisted record %q: %v", e.Key, e.Err)
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }
