package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/boardprep/internal/ui/theme"
)

// OptionLabels are the letters shown in front of answer options.
var OptionLabels = []string{"A", "B", "C", "D"}

// OptionList renders the four answer options of a question. Before an
// answer is chosen the cursor is highlighted; afterwards the correct option
// is shown in green and a wrong choice in red.
type OptionList struct {
	Options      []string
	CorrectIndex int
	Cursor       int
	// Chosen is the answered option, or -1.
	Chosen int
}

// NewOptionList creates an unanswered option list.
func NewOptionList(options []string, correctIndex int) OptionList {
	return OptionList{
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// Answered reports whether an option was chosen.
func (o OptionList) Answered() bool { return o.Chosen >= 0 }

// Move shifts the cursor by delta, staying within bounds.
func (o OptionList) Move(delta int) OptionList {
	if o.Answered() {
		return o
	}
	o.Cursor += delta
	if o.Cursor < 0 {
		o.Cursor = 0
	}
	if o.Cursor >= len(o.Options) {
		o.Cursor = len(o.Options) - 1
	}
	return o
}

// View renders the options at the given width.
func (o OptionList) View(width int) string {
	lines := make([]string, 0, len(o.Options))
	for i, opt := range o.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if !o.Answered() && i == o.Cursor {
			prefix = "▸ "
		}
		mark := ""
		style := theme.Unselected
		switch {
		case o.Answered() && i == o.CorrectIndex:
			style = theme.Correct
			mark = "  ✓"
		case o.Answered() && i == o.Chosen:
			style = theme.Incorrect
			mark = "  ✗"
		case o.Answered():
			style = theme.Muted
		case i == o.Cursor:
			style = theme.Selected
		}
		lines = append(lines, style.Width(width).Render(fmt.Sprintf("%s%s)  %s%s", prefix, label, opt, mark)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"))
}
