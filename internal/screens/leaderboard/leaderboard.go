package leaderboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/boardprep/internal/catalog"
	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/session"
	"github.com/abhisek/boardprep/internal/ui/layout"
	"github.com/abhisek/boardprep/internal/ui/theme"
)

// LeaderboardScreen shows the static state-level rankings.
type LeaderboardScreen struct {
	ctrl    *session.Controller
	entries []catalog.LeaderboardEntry
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

// New creates a LeaderboardScreen.
func New(ctrl *session.Controller) *LeaderboardScreen {
	return &LeaderboardScreen{ctrl: ctrl, entries: catalog.Leaderboard()}
}

func (l *LeaderboardScreen) Init() tea.Cmd { return nil }

func (l *LeaderboardScreen) Title() string { return "Hall of Fame" }

func (l *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (l *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter", "q":
			l.ctrl.GoHome()
		}
	}
	return l, nil
}

func (l *LeaderboardScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	heading := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Hall of Fame")
	sub := theme.Muted.Render("Bihar Board Class 10 State-Level Rankings")

	rows := make([]string, 0, len(l.entries)+1)
	for _, e := range l.entries {
		rankStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
		if e.Rank == 1 {
			rankStyle = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Highlight).Bold(true)
		}
		rank := rankStyle.Render(fmt.Sprintf(" %d ", e.Rank))
		name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.Name)
		district := theme.Muted.Render(strings.ToUpper(e.District))
		score := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d XP", e.Score))

		left := rank + "  " + name + "  " + district
		gap := cw - 4 - lipgloss.Width(left) - lipgloss.Width(score)
		if gap < 1 {
			gap = 1
		}
		rows = append(rows, theme.Card.Padding(0, 1).Width(cw).Render(left+strings.Repeat(" ", gap)+score))
	}

	you := theme.Hint.Render(fmt.Sprintf("Your total: %d XP", l.ctrl.State().Stats.TotalScore))
	rows = append(rows, you)

	return layout.Center(heading+"\n"+sub+"\n\n"+strings.Join(rows, "\n"), width, height)
}
