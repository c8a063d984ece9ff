package result

import (
	"context"
	"fmt"
	"math"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/session"
	"github.com/abhisek/boardprep/internal/ui/components"
	"github.com/abhisek/boardprep/internal/ui/layout"
	"github.com/abhisek/boardprep/internal/ui/theme"
)

// ResultScreen shows the score report of the finished quiz.
type ResultScreen struct {
	ctx     context.Context
	ctrl    *session.Controller
	menu    components.Menu
	spinner spinner.Model
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for the controller's finished session.
func New(ctx context.Context, ctrl *session.Controller) *ResultScreen {
	r := &ResultScreen{
		ctx:     ctx,
		ctrl:    ctrl,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
	r.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retake This Chapter", Action: func() tea.Cmd {
			req, err := ctrl.RetakeRequest(ctx)
			if err != nil {
				ctrl.Logger().Debug("retake rejected", zap.Error(err))
				return nil
			}
			return screen.Fetch(req)
		}},
		{Label: "Go Back Home", Action: func() tea.Cmd {
			ctrl.GoHome()
			return nil
		}},
	})
	return r
}

func (r *ResultScreen) Init() tea.Cmd {
	return r.spinner.Tick
}

func (r *ResultScreen) Title() string {
	return "Quiz Finished"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd
	case tea.KeyMsg:
		if msg.String() == "esc" {
			r.ctrl.GoHome()
			return r, nil
		}
		if r.ctrl.State().Generating {
			return r, nil
		}
		var cmd tea.Cmd
		r.menu, cmd = r.menu.Update(msg)
		return r, cmd
	}
	return r, nil
}

// Percent rounds an accuracy fraction to a whole percentage.
func Percent(accuracy float64) int {
	return int(math.Round(accuracy * 100))
}

func (r *ResultScreen) View(width, height int) string {
	st := r.ctrl.State()
	s := st.Session
	if s == nil {
		return ""
	}
	cw := layout.ContentWidth(width)

	heading := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("🎯 Quiz Finished!")
	topic := theme.Muted.Render("Topic: " + s.Topic())

	score := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Total Score\n%d / %d", s.Score, s.MaxScore()))
	accuracy := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("Accuracy\n%d%%", Percent(s.Accuracy())))
	correct := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Correct\n%d of %d", s.Correct(), len(s.Questions)))
	card := theme.Card.Width(cw).Align(lipgloss.Center).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, score, "      ", accuracy, "      ", correct))

	var actions string
	if st.Generating {
		actions = r.spinner.View() + " Loading questions..."
	} else {
		actions = r.menu.View()
	}

	return layout.Center(strings.Join([]string{heading + "\n" + topic, card, actions}, "\n\n"), width, height)
}
