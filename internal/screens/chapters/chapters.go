package chapters

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/boardprep/internal/catalog"
	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/session"
	"github.com/abhisek/boardprep/internal/ui/components"
	"github.com/abhisek/boardprep/internal/ui/layout"
	"github.com/abhisek/boardprep/internal/ui/theme"
)

// ChaptersScreen lists the chapters of the selected subject.
type ChaptersScreen struct {
	ctx     context.Context
	ctrl    *session.Controller
	menu    components.Menu
	spinner spinner.Model
}

var _ screen.Screen = (*ChaptersScreen)(nil)
var _ screen.KeyHintProvider = (*ChaptersScreen)(nil)

// New creates a ChaptersScreen for the controller's selected subject.
func New(ctx context.Context, ctrl *session.Controller) *ChaptersScreen {
	subject := ctrl.State().Subject

	var items []components.MenuItem
	for _, ch := range catalog.Chapters(subject) {
		label := ch.Name
		if ch.Completed {
			label += " ✅"
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: fmt.Sprintf("%d Questions", ch.TotalQuestions),
			Action: func() tea.Cmd {
				return screen.StartQuiz(ctx, ctrl, subject, ch.Name)
			},
		})
	}

	return &ChaptersScreen{
		ctx:     ctx,
		ctrl:    ctrl,
		menu:    components.NewMenu(items),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
}

func (c *ChaptersScreen) Init() tea.Cmd {
	return c.spinner.Tick
}

func (c *ChaptersScreen) Title() string {
	return string(c.ctrl.State().Subject) + " Topics"
}

func (c *ChaptersScreen) KeyHints() []layout.KeyHint {
	if c.ctrl.State().Generating {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start chapter"},
		{Key: "Esc", Description: "All subjects"},
	}
}

func (c *ChaptersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			c.ctrl.GoHome()
			return c, nil
		}
		if c.ctrl.State().Generating {
			return c, nil
		}
		var cmd tea.Cmd
		c.menu, cmd = c.menu.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *ChaptersScreen) View(width, height int) string {
	st := c.ctrl.State()
	cw := layout.ContentWidth(width)

	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(components.SubjectIcon(st.Subject) + "  " + string(st.Subject) + " Topics")
	sub := theme.Muted.Render("Chapter-wise practice for excellence")

	var body string
	if st.Generating {
		body = lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(c.spinner.View() + " Curating your topic questions...")
	} else {
		body = c.menu.View()
		if sel := c.menu.Selected; sel < len(catalog.Chapters(st.Subject)) {
			desc := catalog.Chapters(st.Subject)[sel].Description
			body += "\n\n" + theme.Hint.Width(cw).Render(desc)
		}
	}

	return layout.Center(strings.Join([]string{heading + "\n" + sub, body}, "\n\n"), width, height)
}
