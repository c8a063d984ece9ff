package quizview

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/session"
	"github.com/abhisek/boardprep/internal/ui/components"
	"github.com/abhisek/boardprep/internal/ui/layout"
	"github.com/abhisek/boardprep/internal/ui/theme"
)

// lowTime is the countdown threshold below which the clock turns red.
const lowTime = 60

// QuizScreen shows the current question, its options and the countdown.
type QuizScreen struct {
	ctx  context.Context
	ctrl *session.Controller

	// index is the question the option list was built for.
	index   int
	options components.OptionList
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen on the controller's active session.
func New(ctx context.Context, ctrl *session.Controller) *QuizScreen {
	q := &QuizScreen{ctx: ctx, ctrl: ctrl, index: -1}
	q.sync()
	return q
}

// sync rebuilds the option list when the cursor moved to a new question.
func (q *QuizScreen) sync() {
	s := q.ctrl.State().Session
	if s == nil || s.Cursor == q.index {
		return
	}
	cur := s.Current()
	q.index = s.Cursor
	q.options = components.NewOptionList(cur.Options, cur.CorrectIndex)
	if s.Answered() {
		q.options.Chosen = s.Answers[s.Cursor]
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	if s := q.ctrl.State().Session; s != nil {
		return s.Topic()
	}
	return "Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.options.Answered() {
		label := "Next question"
		if s := q.ctrl.State().Session; s != nil && s.AtLast() {
			label = "Finish & see results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Exit & save"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-4/A-D", Description: "Answer"},
		{Key: "Enter", Description: "Lock answer"},
		{Key: "Esc", Description: "Exit & save"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return q, nil
	}
	q.sync()

	key := kmsg.String()
	if key == "esc" {
		q.ctrl.GoHome()
		return q, nil
	}

	if q.options.Answered() {
		switch key {
		case "enter", "n", "space":
			if err := q.ctrl.Advance(q.ctx); err != nil {
				q.ctrl.Logger().Debug("advance rejected", zap.Error(err))
			}
			q.sync()
		}
		return q, nil
	}

	switch key {
	case "up", "k":
		q.options = q.options.Move(-1)
	case "down", "j":
		q.options = q.options.Move(1)
	case "enter":
		q.answer(q.options.Cursor)
	default:
		if idx, ok := optionIndex(key); ok {
			q.answer(idx)
		}
	}
	return q, nil
}

func (q *QuizScreen) answer(idx int) {
	if err := q.ctrl.RecordAnswer(q.ctx, idx); err != nil {
		q.ctrl.Logger().Debug("answer rejected", zap.Int("option", idx), zap.Error(err))
		return
	}
	q.options.Cursor = idx
	q.options.Chosen = idx
}

// optionIndex maps 1-4 and a-d to an option index.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	}
	return 0, false
}

func (q *QuizScreen) View(width, height int) string {
	st := q.ctrl.State()
	s := st.Session
	if s == nil || s.Cursor >= len(s.Questions) {
		return ""
	}
	q.sync()
	cw := layout.ContentWidth(width)

	clockStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if st.Remaining < lowTime {
		clockStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	info := fmt.Sprintf("Question %d / %d   %s   %s",
		s.Cursor+1, len(s.Questions),
		lipgloss.NewStyle().Foreground(theme.Highlight).Render(fmt.Sprintf("%d pts", s.Score)),
		clockStyle.Render("⏲ "+layout.FormatClock(st.Remaining)),
	)

	done := s.Cursor
	if s.Answered() {
		done++
	}
	progress := components.NewProgressBar("", float64(done)/float64(len(s.Questions)), false, cw).View()

	cur := s.Current()
	var sections []string
	sections = append(sections, theme.Muted.Render(info), progress)
	if cur.Difficulty != "" {
		sections = append(sections, theme.Hint.Render(string(cur.Difficulty)))
	}
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(cur.Prompt),
		q.options.View(cw),
	)

	if q.options.Answered() {
		verdict := theme.Correct.Render("Correct! +10")
		if !cur.IsCorrect(q.options.Chosen) {
			verdict = theme.Incorrect.Render("Not quite.")
		}
		explanation := theme.Card.Width(cw).Render(verdict + "\n\n" + theme.Body.Render(cur.Explanation))
		next := "Next Question →"
		if s.AtLast() {
			next = "Finish & See Results"
		}
		sections = append(sections, explanation, theme.ButtonActive.Render(next))
	}

	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}
