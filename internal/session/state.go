package session

import (
	"context"

	"github.com/abhisek/boardprep/internal/questiongen"
	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/store"
)

// View is the screen the presentation layer should show.
type View int

const (
	ViewHome View = iota
	ViewChapters
	ViewQuiz
	ViewResult
	ViewLeaderboard
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewChapters:
		return "chapters"
	case ViewQuiz:
		return "quiz"
	case ViewResult:
		return "result"
	case ViewLeaderboard:
		return "leaderboard"
	}
	return "unknown"
}

// State is a snapshot of everything the presentation layer renders.
type State struct {
	View View

	// Subject is the subject picked on the home screen, used by the
	// chapter list.
	Subject quiz.Subject

	// Session is the current quiz. It stays set, marked completed, while
	// the result view is shown.
	Session *quiz.Session

	// Remaining is the countdown in seconds.
	Remaining int

	Stats quiz.UserStats

	// Generating is true while a quiz start is waiting for questions.
	Generating bool

	// Err is a dismissible user-facing message. Empty means no error.
	Err string
}

// HasResumable reports whether an unfinished quiz can be resumed.
func (s State) HasResumable() bool {
	return s.Session.Active()
}

// Source produces the question batch for a new quiz.
type Source interface {
	Select(ctx context.Context, subject quiz.Subject, chapter string) (questiongen.Batch, error)
}

// EventRecorder receives quiz lifecycle events. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendQuizEvent(ctx context.Context, data store.QuizEventData) error
}
