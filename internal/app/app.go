package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/router"
	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/screens/chapters"
	"github.com/abhisek/boardprep/internal/screens/home"
	"github.com/abhisek/boardprep/internal/screens/leaderboard"
	"github.com/abhisek/boardprep/internal/screens/quizview"
	"github.com/abhisek/boardprep/internal/screens/result"
	"github.com/abhisek/boardprep/internal/session"
	"github.com/abhisek/boardprep/internal/store"
	"github.com/abhisek/boardprep/internal/ui/layout"
	"github.com/abhisek/boardprep/internal/ui/theme"
)

// Options holds dependencies for the TUI.
type Options struct {
	Controller *session.Controller

	// Events backs the history screen; nil hides it.
	Events store.EventRepo

	// Start, when set, launches straight into a quiz on this topic.
	Start *StartTopic
}

// StartTopic names the quiz to start on launch.
type StartTopic struct {
	Subject quiz.Subject
	Chapter string
}

// tickMsg advances the countdown of the timer generation it carries.
type tickMsg struct {
	gen uint64
}

func tick(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	ctrl   *session.Controller
	router *router.Router
	start  *StartTopic

	// scheduled is the timer generation a tick is already pending for.
	scheduled uint64

	width  int
	height int
}

// newAppModel creates an AppModel whose screens follow the controller's view.
func newAppModel(ctx context.Context, opts Options) AppModel {
	ctrl := opts.Controller
	build := func(v session.View) screen.Screen {
		switch v {
		case session.ViewChapters:
			return chapters.New(ctx, ctrl)
		case session.ViewQuiz:
			return quizview.New(ctx, ctrl)
		case session.ViewResult:
			return result.New(ctx, ctrl)
		case session.ViewLeaderboard:
			return leaderboard.New(ctrl)
		}
		return home.New(ctx, ctrl, opts.Events)
	}
	return AppModel{
		ctx:    ctx,
		ctrl:   ctrl,
		router: router.New(func() session.View { return ctrl.State().View }, build),
		start:  opts.Start,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Sync()}
	if m.start != nil {
		cmds = append(cmds, screen.StartQuiz(m.ctx, m.ctrl, m.start.Subject, m.start.Chapter))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.ctrl.Tick(m.ctx, msg.gen) {
			cmd = tick(msg.gen)
		}
		cmd = tea.Batch(cmd, m.router.Sync())

	case screen.StartedMsg:
		err := m.ctrl.CompleteStart(m.ctx, msg.Request, msg.Questions, msg.Err)
		if errors.Is(err, quiz.ErrStaleRequest) {
			return m, nil
		}
		cmd = m.router.Sync()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.ctrl.CancelStart()
			return m, tea.Quit
		case "x":
			if m.ctrl.State().Err != "" {
				m.ctrl.DismissError()
				return m, nil
			}
		}
		cmd = m.router.Update(msg)

	default:
		cmd = m.router.Update(msg)
	}

	var tickCmd tea.Cmd
	m, tickCmd = m.ensureTicking()
	return m, tea.Batch(cmd, tickCmd)
}

// ensureTicking schedules the first tick of a freshly started countdown.
func (m AppModel) ensureTicking() (AppModel, tea.Cmd) {
	gen, running := m.ctrl.Ticking()
	if !running || gen == m.scheduled {
		return m, nil
	}
	m.scheduled = gen
	return m, tick(gen)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	st := m.ctrl.State()
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, st.Stats.TotalScore, st.Stats.Streak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	if st.Err != "" {
		footerHints = append(footerHints, layout.KeyHint{Key: "X", Description: "Dismiss"})
	}
	footer := layout.RenderFooter(footerHints, m.width)

	banner := ""
	if st.Err != "" {
		banner = theme.ErrorBanner.Width(m.width).Render(st.Err + "   [x] Dismiss")
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if banner != "" {
		contentHeight -= lipgloss.Height(banner)
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	if banner != "" {
		content = banner + "\n" + content
	}
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
