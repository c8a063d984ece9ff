package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/session"
)

// StartedMsg carries the outcome of an asynchronous quiz start back to the
// update loop, which settles it with Controller.CompleteStart.
type StartedMsg struct {
	Request   *session.StartRequest
	Questions []quiz.Question
	Err       error
}

// StartQuiz marks a quiz start as pending and returns the command that
// fetches its questions. It returns nil when a start is already pending.
func StartQuiz(ctx context.Context, ctrl *session.Controller, subject quiz.Subject, chapter string) tea.Cmd {
	req, err := ctrl.BeginStart(ctx, subject, chapter)
	if err != nil {
		return nil
	}
	return Fetch(req)
}

// Fetch runs a pending start request off the update loop.
func Fetch(req *session.StartRequest) tea.Cmd {
	return func() tea.Msg {
		questions, err := req.Fetch()
		return StartedMsg{Request: req, Questions: questions, Err: err}
	}
}
