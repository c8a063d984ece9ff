package quiz

import (
	"fmt"
	"strings"
	"time"
)

const (
	// PointsPerCorrect is the score reward for a correct answer.
	PointsPerCorrect = 10

	// QuizDuration is the countdown length of a session, in seconds.
	QuizDuration = 600

	// BatchSize is the number of questions requested from the remote generator.
	BatchSize = 10

	// OptionCount is the number of answer options every question carries.
	OptionCount = 4
)

// Subject is one of the fixed exam subjects.
type Subject string

const (
	Mathematics   Subject = "Mathematics"
	Science       Subject = "Science"
	SocialScience Subject = "Social Science"
	Hindi         Subject = "Hindi"
	English       Subject = "English"
)

// AllSubjects lists the subjects in display order.
var AllSubjects = []Subject{Mathematics, Science, SocialScience, Hindi, English}

// ParseSubject resolves a subject name case-insensitively.
func ParseSubject(s string) (Subject, error) {
	for _, sub := range AllSubjects {
		if strings.EqualFold(strings.TrimSpace(s), string(sub)) {
			return sub, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// Valid reports whether s is one of the fixed subjects.
func (s Subject) Valid() bool {
	for _, sub := range AllSubjects {
		if s == sub {
			return true
		}
	}
	return false
}

// Difficulty labels a question's level.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// RemoteDifficulty is the level requested from the remote generator.
const RemoteDifficulty = Intermediate

// ParseDifficulty resolves a difficulty label case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Question is a single multiple-choice question. It is never mutated after
// the provider returns it.
type Question struct {
	ID           string     `json:"id"`
	Prompt       string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctAnswerIndex"`
	Explanation  string     `json:"explanation"`
	Difficulty   Difficulty `json:"difficulty"`
	Chapter      string     `json:"chapter,omitempty"`
}

// Validate checks the question invariants.
func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("question id is empty")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question %s: prompt is empty", q.ID)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %s: expected %d options, got %d", q.ID, OptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("question %s: option %d is empty", q.ID, i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return fmt.Errorf("question %s: correct index %d out of range", q.ID, q.CorrectIndex)
	}
	if _, err := ParseDifficulty(string(q.Difficulty)); err != nil {
		return fmt.Errorf("question %s: %w", q.ID, err)
	}
	return nil
}

// IsCorrect reports whether idx is the correct option.
func (q Question) IsCorrect(idx int) bool {
	return idx == q.CorrectIndex
}

// Chapter is a syllabus chapter within a subject. TotalQuestions is
// informational only.
type Chapter struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	TotalQuestions int    `json:"totalQuestions"`
	Completed      bool   `json:"completed"`
}

// UserStats holds cumulative totals across all completed quizzes.
type UserStats struct {
	TotalQuizzes int       `json:"totalQuizzes"`
	TotalScore   int       `json:"totalScore"`
	Streak       int       `json:"streak"` // reserved, never incremented
	Level        int       `json:"level"`  // reserved, never incremented
	LastActive   time.Time `json:"lastActive"`
}

// DefaultStats returns the stats of a user who has never finished a quiz.
func DefaultStats(now time.Time) UserStats {
	return UserStats{Level: 1, LastActive: now}
}

// Record returns the stats after one more completed quiz with the given score.
func (s UserStats) Record(score int, now time.Time) UserStats {
	s.TotalQuizzes++
	s.TotalScore += score
	s.LastActive = now
	return s
}
