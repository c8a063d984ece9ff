package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/boardprep/internal/router"
	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/store"
	"github.com/abhisek/boardprep/internal/ui/layout"
	"github.com/abhisek/boardprep/internal/ui/theme"
)

const historyLimit = 50

// QuizLister is the slice of store.EventRepo the history screen reads.
type QuizLister interface {
	QueryQuizEvents(ctx context.Context, opts store.QueryOpts) ([]store.QuizEvent, error)
}

type historyLoadedMsg struct {
	Events []store.QuizEvent
	Err    error
}

// HistoryScreen lists past quiz starts, finishes and discards.
type HistoryScreen struct {
	ctx      context.Context
	events   QuizLister
	rows     []store.QuizEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, events QuizLister) *HistoryScreen {
	return &HistoryScreen{
		ctx:      ctx,
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		rows, err := s.events.QueryQuizEvents(s.ctx, store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Events: rows, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.rows) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No quizzes yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.rows {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		topic := ev.Chapter
		if topic == "" {
			topic = ev.Subject
		}
		line := fmt.Sprintf("%s%s  %-8s %s", prefix, ev.Timestamp.Local().Format("Jan 02 15:04"), ev.Action, topic)
		if ev.Action != store.QuizStarted {
			line += fmt.Sprintf("  %d pts", ev.Score)
		}

		style := lipgloss.NewStyle().Foreground(actionColor(ev.Action))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d/%d correct  %s elapsed", ev.Correct, ev.Total, layout.FormatClock(int(ev.DurationSecs)))
			if ev.Forced {
				detail += "  (time ran out)"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func actionColor(a store.QuizAction) color.Color {
	switch a {
	case store.QuizFinished:
		return theme.Success
	case store.QuizDiscarded:
		return theme.Accent
	default:
		return theme.Text
	}
}
