package quiz

import (
	"encoding/json"
	"fmt"
	"time"
)

// Session is one attempt at a fixed batch of questions.
//
// Answers[i] is the option chosen for Questions[i]; answers are only ever
// appended, so len(Answers) <= Cursor+1 holds at all times.
type Session struct {
	ID        string
	Subject   Subject
	Chapter   string
	Questions []Question
	Cursor    int
	Score     int
	Answers   []int
	StartedAt time.Time
	Completed bool
}

// NewSession creates a fresh session at the first question.
func NewSession(id string, subject Subject, chapter string, questions []Question, now time.Time) *Session {
	return &Session{
		ID:        id,
		Subject:   subject,
		Chapter:   chapter,
		Questions: questions,
		Answers:   []int{},
		StartedAt: now,
	}
}

// Active reports whether the session is still in progress.
func (s *Session) Active() bool {
	return s != nil && !s.Completed
}

// Current returns the question under the cursor.
func (s *Session) Current() Question {
	return s.Questions[s.Cursor]
}

// Answered reports whether the current question already has an answer.
func (s *Session) Answered() bool {
	return len(s.Answers) > s.Cursor
}

// AtLast reports whether the cursor is on the final question.
func (s *Session) AtLast() bool {
	return s.Cursor == len(s.Questions)-1
}

// Correct returns the number of correctly answered questions.
func (s *Session) Correct() int {
	n := 0
	for i, a := range s.Answers {
		if i < len(s.Questions) && s.Questions[i].IsCorrect(a) {
			n++
		}
	}
	return n
}

// MaxScore is the score for answering every question correctly.
func (s *Session) MaxScore() int {
	return len(s.Questions) * PointsPerCorrect
}

// Accuracy is the score as a fraction of the maximum score.
func (s *Session) Accuracy() float64 {
	if s.MaxScore() == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.MaxScore())
}

// Topic is the chapter name, or the subject for mixed quizzes.
func (s *Session) Topic() string {
	if s.Chapter != "" {
		return s.Chapter
	}
	return string(s.Subject)
}

// Validate checks the structural invariants of a session, typically one
// restored from storage.
func (s *Session) Validate() error {
	if !s.Subject.Valid() {
		return fmt.Errorf("invalid subject %q", s.Subject)
	}
	if len(s.Questions) == 0 {
		return fmt.Errorf("session has no questions")
	}
	for _, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	if s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return fmt.Errorf("cursor %d out of range [0,%d)", s.Cursor, len(s.Questions))
	}
	if len(s.Answers) < s.Cursor || len(s.Answers) > s.Cursor+1 {
		return fmt.Errorf("%d answers recorded with cursor at %d", len(s.Answers), s.Cursor)
	}
	for i, a := range s.Answers {
		if a < 0 || a >= OptionCount {
			return fmt.Errorf("answer %d: option %d out of range", i, a)
		}
	}
	if want := s.Correct() * PointsPerCorrect; s.Score != want {
		return fmt.Errorf("score %d does not match %d correct answers", s.Score, s.Correct())
	}
	return nil
}

// sessionJSON is the persisted form. Field names follow the original
// browser storage format; startTime is unix milliseconds.
type sessionJSON struct {
	ID                   string     `json:"id,omitempty"`
	Subject              Subject    `json:"subject"`
	Chapter              string     `json:"chapter,omitempty"`
	Questions            []Question `json:"questions"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	Score                int        `json:"score"`
	Answers              []int      `json:"answers"`
	StartTime            int64      `json:"startTime"`
	IsCompleted          bool       `json:"isCompleted"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	answers := s.Answers
	if answers == nil {
		answers = []int{}
	}
	return json.Marshal(sessionJSON{
		ID:                   s.ID,
		Subject:              s.Subject,
		Chapter:              s.Chapter,
		Questions:            s.Questions,
		CurrentQuestionIndex: s.Cursor,
		Score:                s.Score,
		Answers:              answers,
		StartTime:            s.StartedAt.UnixMilli(),
		IsCompleted:          s.Completed,
	})
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Session{
		ID:        raw.ID,
		Subject:   raw.Subject,
		Chapter:   raw.Chapter,
		Questions: raw.Questions,
		Cursor:    raw.CurrentQuestionIndex,
		Score:     raw.Score,
		Answers:   raw.Answers,
		StartedAt: time.UnixMilli(raw.StartTime),
		Completed: raw.IsCompleted,
	}
	if s.Answers == nil {
		s.Answers = []int{}
	}
	return nil
}
