package home

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/boardprep/internal/catalog"
	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/router"
	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/screens/history"
	"github.com/abhisek/boardprep/internal/session"
	"github.com/abhisek/boardprep/internal/store"
	"github.com/abhisek/boardprep/internal/ui/components"
	"github.com/abhisek/boardprep/internal/ui/layout"
	"github.com/abhisek/boardprep/internal/ui/theme"
)

// HomeScreen shows the running totals, the resume banner and the subject menu.
type HomeScreen struct {
	ctx  context.Context
	ctrl *session.Controller

	menu           components.Menu
	spinner        spinner.Model
	confirmDiscard bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. events may be nil, which hides the history entry.
func New(ctx context.Context, ctrl *session.Controller, events store.EventRepo) *HomeScreen {
	h := &HomeScreen{
		ctx:     ctx,
		ctrl:    ctrl,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}

	var items []components.MenuItem
	for _, subject := range catalog.Subjects() {
		items = append(items, components.MenuItem{
			Label:  components.SubjectIcon(subject) + "  " + string(subject),
			Detail: fmt.Sprintf("%d chapters", len(catalog.Chapters(subject))),
			Action: func() tea.Cmd {
				if err := ctrl.SelectSubject(subject); err != nil {
					ctrl.Logger().Debug("select subject rejected", zap.String("subject", string(subject)), zap.Error(err))
				}
				return nil
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:  "📝  Today's Mix",
			Detail: fmt.Sprintf("%d questions", quiz.BatchSize),
			Action: func() tea.Cmd {
				return screen.StartQuiz(ctx, ctrl, quiz.Mathematics, "")
			},
		},
		components.MenuItem{
			Label:  "🏅  Leaderboard",
			Action: func() tea.Cmd { ctrl.ShowLeaderboard(); return nil },
		},
	)
	if events != nil {
		items = append(items, components.MenuItem{
			Label: "📜  History",
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(ctx, events)} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "🚪  Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.spinner.Tick
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmDiscard {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete progress"},
			{Key: "N", Description: "Keep it"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if h.ctrl.State().HasResumable() {
		hints = append(hints,
			layout.KeyHint{Key: "R", Description: "Resume"},
			layout.KeyHint{Key: "D", Description: "Discard"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd

	case tea.KeyMsg:
		if h.confirmDiscard {
			switch msg.String() {
			case "y", "Y":
				if err := h.ctrl.Discard(h.ctx); err != nil {
					h.ctrl.Logger().Debug("discard rejected", zap.Error(err))
				}
				h.confirmDiscard = false
			case "n", "N", "esc":
				h.confirmDiscard = false
			}
			return h, nil
		}

		if h.ctrl.State().HasResumable() {
			switch msg.String() {
			case "r", "R":
				if err := h.ctrl.Resume(h.ctx); err != nil {
					h.ctrl.Logger().Debug("resume rejected", zap.Error(err))
				}
				return h, nil
			case "d", "D":
				h.confirmDiscard = true
				return h, nil
			}
		}

		if h.ctrl.State().Generating {
			return h, nil
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	st := h.ctrl.State()
	cw := layout.ContentWidth(width)
	compact := layout.IsCompact(width, height+8)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStats(st.Stats, cw))

	if st.HasResumable() {
		sections = append(sections, h.renderResume(st, cw))
	}

	if st.Generating {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(h.spinner.View()+" Loading questions..."))
	} else {
		sections = append(sections, theme.Title.Width(cw).Align(lipgloss.Left).Render("Choose Your Subject"))
		sections = append(sections, h.menu.View())
	}

	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderResume(st session.State, cw int) string {
	s := st.Session
	var body string
	if h.confirmDiscard {
		body = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render("Are you sure you want to delete your current progress? (y/n)")
	} else {
		body = theme.Selected.Render("⏳ Resume your practice?") + "\n" +
			theme.Hint.Render(fmt.Sprintf("Topic: %s • Question %d of %d • %s left",
				s.Topic(), s.Cursor+1, len(s.Questions), layout.FormatClock(st.Remaining))) + "\n" +
			theme.Muted.Render("[r] Resume quiz   [d] Discard")
	}
	return theme.Banner.Width(cw).Render(body)
}

func renderTitle(cw int, compact bool) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("BSEB Class 10 Quiz")
	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(title)
	}
	tagline := theme.Muted.Render("Targeting 450+ Marks in Bihar Board Exams 🎯")
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(title + "\n" + tagline)
}

func renderStats(stats quiz.UserStats, cw int) string {
	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("🔥 %d Days", stats.Streak))
	score := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).
		Render(fmt.Sprintf("🏆 %d Score", stats.TotalScore))
	quizzes := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("✎ %d Quizzes", stats.TotalQuizzes))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(streak + "   " + score + "   " + quizzes)
}
