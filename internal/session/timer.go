package session

import "github.com/abhisek/boardprep/internal/quiz"

// Timer is a per-session countdown in whole seconds.
//
// Every Start and Stop bumps the generation. A tick scheduled under an older
// generation is rejected, so stopping the timer cancels all ticks in flight
// without any goroutine bookkeeping.
type Timer struct {
	remaining  int
	generation uint64
	running    bool
}

// NewTimer returns a stopped timer with the given number of seconds left.
func NewTimer(seconds int) *Timer {
	t := &Timer{}
	t.Reset(seconds)
	return t
}

// Reset sets the remaining seconds, clamped to [0, QuizDuration].
func (t *Timer) Reset(seconds int) {
	t.remaining = clampSeconds(seconds)
}

// Remaining returns the seconds left.
func (t *Timer) Remaining() int { return t.remaining }

// Running reports whether the timer is counting down.
func (t *Timer) Running() bool { return t.running }

// Generation returns the current tick generation.
func (t *Timer) Generation() uint64 { return t.generation }

// Start begins counting down and returns the generation that ticks must carry.
func (t *Timer) Start() uint64 {
	t.generation++
	t.running = true
	return t.generation
}

// Stop halts the countdown and invalidates outstanding ticks.
func (t *Timer) Stop() {
	t.generation++
	t.running = false
}

// Tick decrements the timer by one second. It reports false, and changes
// nothing, when the timer is stopped, already at zero, or gen is stale.
func (t *Timer) Tick(gen uint64) bool {
	if !t.running || gen != t.generation || t.remaining <= 0 {
		return false
	}
	t.remaining--
	return true
}

func clampSeconds(n int) int {
	switch {
	case n < 0:
		return 0
	case n > quiz.QuizDuration:
		return quiz.QuizDuration
	}
	return n
}
