package session

import (
	"testing"

	"github.com/abhisek/boardprep/internal/quiz"
)

func TestTimerTickRequiresCurrentGeneration(t *testing.T) {
	tm := NewTimer(quiz.QuizDuration)

	if tm.Tick(tm.Generation()) {
		t.Fatal("stopped timer accepted a tick")
	}

	gen := tm.Start()
	if !tm.Tick(gen) {
		t.Fatal("running timer rejected a current tick")
	}
	if tm.Remaining() != quiz.QuizDuration-1 {
		t.Errorf("Remaining = %d, want %d", tm.Remaining(), quiz.QuizDuration-1)
	}

	tm.Stop()
	if tm.Tick(gen) {
		t.Error("tick from before Stop was accepted")
	}

	newGen := tm.Start()
	if tm.Tick(gen) {
		t.Error("tick from an earlier run was accepted")
	}
	if !tm.Tick(newGen) {
		t.Error("tick from the current run was rejected")
	}
	if tm.Remaining() != quiz.QuizDuration-2 {
		t.Errorf("Remaining = %d, want %d", tm.Remaining(), quiz.QuizDuration-2)
	}
}

func TestTimerStopsAtZero(t *testing.T) {
	tm := NewTimer(2)
	gen := tm.Start()

	if !tm.Tick(gen) || !tm.Tick(gen) {
		t.Fatal("expected two accepted ticks")
	}
	if tm.Tick(gen) {
		t.Error("tick accepted at zero")
	}
	if tm.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", tm.Remaining())
	}
}

func TestTimerResetClamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{quiz.QuizDuration, quiz.QuizDuration},
		{quiz.QuizDuration + 1, quiz.QuizDuration},
	}
	for _, tt := range tests {
		tm := NewTimer(tt.in)
		if tm.Remaining() != tt.want {
			t.Errorf("NewTimer(%d).Remaining() = %d, want %d", tt.in, tm.Remaining(), tt.want)
		}
	}
}
