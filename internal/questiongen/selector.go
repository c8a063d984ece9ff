package questiongen

import (
	"context"

	"github.com/abhisek/boardprep/internal/catalog"
	"github.com/abhisek/boardprep/internal/quiz"
)

// Origin records where a batch came from.
type Origin string

const (
	OriginStatic Origin = "static"
	OriginRemote Origin = "remote"
)

// Batch is the result of a selection.
type Batch struct {
	Questions []quiz.Question
	Origin    Origin
}

// Selector decides where a quiz's questions come from: the bundled sample
// batch for the exact chapter name when one exists, else the remote
// generator. The two sources are never merged.
type Selector struct {
	remote Generator
}

// NewSelector returns a Selector. remote may be nil when no LLM is
// configured; chapters without a sample batch then fail.
func NewSelector(remote Generator) *Selector {
	return &Selector{remote: remote}
}

// Static returns the bundled batch for chapter, if any.
func (s *Selector) Static(chapter string) ([]quiz.Question, bool) {
	return catalog.SampleBatch(chapter)
}

// HasRemote reports whether a remote generator is configured.
func (s *Selector) HasRemote() bool {
	return s.remote != nil
}

// Select returns the batch for (subject, chapter). Remote failures come
// back as *quiz.ProviderError and an empty batch as
// quiz.ErrNoQuestionsAvailable.
func (s *Selector) Select(ctx context.Context, subject quiz.Subject, chapter string) (Batch, error) {
	if qs, ok := s.Static(chapter); ok {
		return Batch{Questions: qs, Origin: OriginStatic}, nil
	}

	if s.remote == nil {
		return Batch{}, &quiz.ProviderError{Subject: subject, Chapter: chapter, Err: errNoRemote}
	}

	qs, err := s.remote.Generate(ctx, GenerateInput{
		Subject:    subject,
		Difficulty: quiz.RemoteDifficulty,
		Chapter:    chapter,
		Count:      quiz.BatchSize,
	})
	if err != nil {
		return Batch{}, &quiz.ProviderError{Subject: subject, Chapter: chapter, Err: err}
	}
	if len(qs) == 0 {
		return Batch{}, quiz.ErrNoQuestionsAvailable
	}
	return Batch{Questions: qs, Origin: OriginRemote}, nil
}
