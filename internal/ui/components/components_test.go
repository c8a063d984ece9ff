package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "one", Disabled: true},
		{Label: "two"},
		{Label: "three", Disabled: true},
		{Label: "four"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("down at bottom moved selection to %d", m.Selected)
	}
	m, _ = m.Update(key("k"))
	if m.Selected != 1 {
		t.Errorf("after k Selected = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(key("enter"))
	if !ran {
		t.Error("expected action to run on enter")
	}
}

func TestOptionListMoveIsClamped(t *testing.T) {
	o := NewOptionList([]string{"a", "b", "c", "d"}, 2)
	o = o.Move(-1)
	if o.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", o.Cursor)
	}
	o = o.Move(10)
	if o.Cursor != 3 {
		t.Errorf("Cursor = %d, want 3", o.Cursor)
	}

	o.Chosen = 1
	if moved := o.Move(-1); moved.Cursor != 3 {
		t.Error("answered list should ignore cursor moves")
	}
}

func TestOptionListViewMarksAnswer(t *testing.T) {
	o := NewOptionList([]string{"2", "3", "5", "7"}, 2)
	o.Chosen = 0
	view := o.View(40)
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("expected correct and wrong marks in view:\n%s", view)
	}
}

func TestProgressBarClampsPercent(t *testing.T) {
	p := NewProgressBar("", 1.5, true, 20)
	if !strings.Contains(p.View(), "150%") {
		t.Errorf("expected raw percent label, got %q", p.View())
	}
}
