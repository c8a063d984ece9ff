package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/boardprep/internal/screen"
	"github.com/abhisek/boardprep/internal/session"
)

// PushScreenMsg requests the router to push an overlay screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current overlay screen.
type PopScreenMsg struct{}

// Factory builds the base screen for a controller view.
type Factory func(v session.View) screen.Screen

// Router keeps the base screen in step with the controller's view. Overlay
// screens can be pushed on top; a view change drops them.
type Router struct {
	current func() session.View
	build   Factory

	view  session.View
	stack []screen.Screen
}

// New creates a Router. current reports the controller's view.
func New(current func() session.View, build Factory) *Router {
	return &Router{current: current, build: build}
}

// Sync rebuilds the stack when the controller's view changed since the
// last call, returning the new screen's Init command.
func (r *Router) Sync() tea.Cmd {
	v := r.current()
	if len(r.stack) > 0 && v == r.view {
		return nil
	}
	r.view = v
	s := r.build(v)
	r.stack = []screen.Screen{s}
	return s.Init()
}

// CurrentView returns the controller view the base screen was built for.
func (r *Router) CurrentView() session.View {
	return r.view
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top overlay. No-op on the base screen.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen, handles navigation
// messages and then syncs with the controller's view.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case PushScreenMsg:
		cmd = r.Push(msg.Screen)
	case PopScreenMsg:
		cmd = r.Pop()
	default:
		if active := r.Active(); active != nil {
			var updated screen.Screen
			updated, cmd = active.Update(msg)
			r.stack[len(r.stack)-1] = updated
		}
	}
	return tea.Batch(cmd, r.Sync())
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
