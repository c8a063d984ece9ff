package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/boardprep/internal/questiongen"
	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/store"
)

const realNumbers = "Real Numbers (वास्तविक संख्याएँ)"

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type stubGenerator struct {
	questions []quiz.Question
	err       error
	calls     int
	last      questiongen.GenerateInput
}

func (g *stubGenerator) Generate(_ context.Context, input questiongen.GenerateInput) ([]quiz.Question, error) {
	g.calls++
	g.last = input
	return g.questions, g.err
}

type eventLog struct {
	events []store.QuizEventData
}

func (e *eventLog) AppendQuizEvent(_ context.Context, data store.QuizEventData) error {
	e.events = append(e.events, data)
	return nil
}

func (e *eventLog) actions() []store.QuizAction {
	var out []store.QuizAction
	for _, ev := range e.events {
		out = append(out, ev.Action)
	}
	return out
}

func makeQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: 0,
			Explanation:  "A is correct.",
			Difficulty:   quiz.Intermediate,
		}
	}
	return qs
}

type fixture struct {
	ctrl   *Controller
	kv     *store.MemoryKV
	gen    *stubGenerator
	events *eventLog
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		kv:     store.NewMemoryKV(),
		gen:    &stubGenerator{questions: makeQuestions(quiz.BatchSize)},
		events: &eventLog{},
		logs:   logs,
	}
	f.ctrl = New(Options{
		Store:  f.kv,
		Source: questiongen.NewSelector(f.gen),
		Events: f.events,
		Logger: zap.New(core),
		Clock:  func() time.Time { return fixedNow },
	})
	return f
}

func (f *fixture) get(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := f.kv.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func TestRealNumbersScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	assert.Equal(t, 0, f.gen.calls, "static chapter must not reach the generator")

	st := f.ctrl.State()
	require.NotNil(t, st.Session)
	assert.Equal(t, ViewQuiz, st.View)
	assert.Len(t, st.Session.Questions, 2)
	assert.Equal(t, quiz.QuizDuration, st.Remaining)
	assert.NotEmpty(t, st.Session.ID)
	assert.Equal(t, fixedNow, st.Session.StartedAt)

	require.NoError(t, f.ctrl.RecordAnswer(ctx, 1))
	require.NoError(t, f.ctrl.Advance(ctx))
	require.NoError(t, f.ctrl.RecordAnswer(ctx, 0))
	require.NoError(t, f.ctrl.Advance(ctx))

	st = f.ctrl.State()
	assert.Equal(t, ViewResult, st.View)
	assert.True(t, st.Session.Completed)
	assert.Equal(t, 10, st.Session.Score)
	assert.Equal(t, 1, st.Session.Correct())
	assert.InDelta(t, 0.5, st.Session.Accuracy(), 1e-9)
	assert.Equal(t, 1, st.Stats.TotalQuizzes)
	assert.Equal(t, 10, st.Stats.TotalScore)
	assert.Equal(t, []store.QuizAction{store.QuizStarted, store.QuizFinished}, f.events.actions())
}

func TestStartQuizRemoteBatch(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.StartQuiz(context.Background(), quiz.Science, "Light"))

	assert.Equal(t, 1, f.gen.calls)
	assert.Equal(t, quiz.Science, f.gen.last.Subject)
	assert.Equal(t, quiz.Intermediate, f.gen.last.Difficulty)
	assert.Equal(t, "Light", f.gen.last.Chapter)
	assert.Equal(t, quiz.BatchSize, f.gen.last.Count)

	raw, ok := f.get(t, store.KeyActiveSession)
	require.True(t, ok)
	var persisted quiz.Session
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, "Light", persisted.Chapter)
	assert.Equal(t, 0, persisted.Cursor)

	timer, ok := f.get(t, store.KeyQuizTimer)
	require.True(t, ok)
	assert.Equal(t, "600", timer)
}

func TestStartQuizEmptyBatch(t *testing.T) {
	f := newFixture(t)
	f.gen.questions = nil

	err := f.ctrl.StartQuiz(context.Background(), quiz.Hindi, "")
	require.ErrorIs(t, err, quiz.ErrNoQuestionsAvailable)

	st := f.ctrl.State()
	assert.Nil(t, st.Session)
	assert.False(t, st.Generating)
	assert.Equal(t, ViewHome, st.View)
	assert.Contains(t, st.Err, "Unable to load questions: ")
	_, ok := f.get(t, store.KeyActiveSession)
	assert.False(t, ok)
	assert.Empty(t, f.events.events)
}

func TestStartQuizProviderErrorKeepsExistingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	require.NoError(t, f.ctrl.RecordAnswer(ctx, 1))
	f.ctrl.GoHome()
	before := f.ctrl.State().Session

	f.gen.err = errors.New("quota exceeded")
	err := f.ctrl.StartQuiz(ctx, quiz.English, "")
	var perr *quiz.ProviderError
	require.ErrorAs(t, err, &perr)

	st := f.ctrl.State()
	assert.Same(t, before, st.Session)
	assert.Equal(t, 10, st.Session.Score)
	assert.Contains(t, st.Err, "quota exceeded")

	f.ctrl.DismissError()
	assert.Empty(t, f.ctrl.State().Err)
}

func TestGenerationInProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.ctrl.BeginStart(ctx, quiz.Science, "Light")
	require.NoError(t, err)
	assert.True(t, f.ctrl.State().Generating)

	_, err = f.ctrl.BeginStart(ctx, quiz.Science, "Light")
	assert.ErrorIs(t, err, quiz.ErrGenerationInProgress)

	questions, fetchErr := req.Fetch()
	require.NoError(t, f.ctrl.CompleteStart(ctx, req, questions, fetchErr))
	assert.False(t, f.ctrl.State().Generating)

	f.ctrl.GoHome()
	_, err = f.ctrl.BeginStart(ctx, quiz.Science, "Light")
	assert.NoError(t, err, "a new start is allowed once the previous one settled")
}

func TestCancelledStartIsStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.ctrl.BeginStart(ctx, quiz.Science, "Light")
	require.NoError(t, err)
	f.ctrl.GoHome()
	assert.False(t, f.ctrl.State().Generating)

	err = f.ctrl.CompleteStart(ctx, req, makeQuestions(3), nil)
	assert.ErrorIs(t, err, quiz.ErrStaleRequest)
	assert.Nil(t, f.ctrl.State().Session)
	assert.Equal(t, ViewHome, f.ctrl.State().View)

	next, err := f.ctrl.BeginStart(ctx, quiz.Science, "Light")
	require.NoError(t, err)
	assert.ErrorIs(t, f.ctrl.CompleteStart(ctx, req, makeQuestions(3), nil), quiz.ErrStaleRequest)
	require.NoError(t, f.ctrl.CompleteStart(ctx, next, makeQuestions(3), nil))
	assert.Len(t, f.ctrl.State().Session.Questions, 3)
}

func TestRecordAnswerErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.ctrl.RecordAnswer(ctx, 0), quiz.ErrNoActiveSession)
	assert.ErrorIs(t, f.ctrl.Advance(ctx), quiz.ErrNoActiveSession)

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	assert.ErrorIs(t, f.ctrl.Advance(ctx), quiz.ErrNotAnswered)
	assert.ErrorIs(t, f.ctrl.RecordAnswer(ctx, -1), quiz.ErrInvalidOption)
	assert.ErrorIs(t, f.ctrl.RecordAnswer(ctx, 4), quiz.ErrInvalidOption)

	require.NoError(t, f.ctrl.RecordAnswer(ctx, 1))
	assert.ErrorIs(t, f.ctrl.RecordAnswer(ctx, 1), quiz.ErrAlreadyAnswered)

	st := f.ctrl.State()
	assert.Equal(t, []int{1}, st.Session.Answers)
	assert.Equal(t, 10, st.Session.Score)
}

func TestFinishRemovesProgressAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	require.NoError(t, f.ctrl.RecordAnswer(ctx, 2))

	f.ctrl.Finish(ctx, false)
	f.ctrl.Finish(ctx, false)

	_, ok := f.get(t, store.KeyActiveSession)
	assert.False(t, ok)
	_, ok = f.get(t, store.KeyQuizTimer)
	assert.False(t, ok)

	raw, ok := f.get(t, store.KeyUserStats)
	require.True(t, ok)
	var stats quiz.UserStats
	require.NoError(t, json.Unmarshal([]byte(raw), &stats))
	assert.Equal(t, 1, stats.TotalQuizzes)
	assert.Equal(t, 0, stats.TotalScore)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 0, stats.Streak)
	assert.True(t, stats.LastActive.Equal(fixedNow))

	assert.Equal(t, 1, f.ctrl.State().Stats.TotalQuizzes)
	assert.Equal(t, []store.QuizAction{store.QuizStarted, store.QuizFinished}, f.events.actions())
	_, running := f.ctrl.Ticking()
	assert.False(t, running)
}

func TestTickFinishesExactlyOnceAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	gen, running := f.ctrl.Ticking()
	require.True(t, running)

	for i := 1; i < quiz.QuizDuration; i++ {
		require.True(t, f.ctrl.Tick(ctx, gen), "tick %d", i)
	}
	timer, _ := f.get(t, store.KeyQuizTimer)
	assert.Equal(t, "1", timer)

	assert.False(t, f.ctrl.Tick(ctx, gen))
	assert.False(t, f.ctrl.Tick(ctx, gen))

	st := f.ctrl.State()
	assert.Equal(t, ViewResult, st.View)
	assert.Equal(t, 0, st.Remaining)
	assert.Equal(t, 1, st.Stats.TotalQuizzes)
	require.Len(t, f.events.events, 2)
	assert.True(t, f.events.events[1].Forced)
	assert.Equal(t, int64(quiz.QuizDuration), f.events.events[1].DurationSecs)
}

func TestTickIgnoredOutsideQuizView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	gen, _ := f.ctrl.Ticking()
	require.True(t, f.ctrl.Tick(ctx, gen))

	f.ctrl.ShowLeaderboard()
	assert.False(t, f.ctrl.Tick(ctx, gen))
	assert.Equal(t, quiz.QuizDuration-1, f.ctrl.State().Remaining)

	require.NoError(t, f.ctrl.Resume(ctx))
	assert.False(t, f.ctrl.Tick(ctx, gen), "tick from before the pause must be ignored")

	resumed, running := f.ctrl.Ticking()
	require.True(t, running)
	assert.True(t, f.ctrl.Tick(ctx, resumed))
	assert.Equal(t, quiz.QuizDuration-2, f.ctrl.State().Remaining)
}

func TestLoadRestoresSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	require.NoError(t, f.ctrl.RecordAnswer(ctx, 1))
	require.NoError(t, f.ctrl.Advance(ctx))
	require.NoError(t, f.kv.Set(ctx, store.KeyQuizTimer, "321"))

	restored := New(Options{Store: f.kv, Source: questiongen.NewSelector(nil)})
	restored.Load(ctx)

	st := restored.State()
	require.True(t, st.HasResumable())
	assert.Equal(t, ViewHome, st.View)
	assert.Equal(t, 1, st.Session.Cursor)
	assert.Equal(t, 10, st.Session.Score)
	assert.Equal(t, 321, st.Remaining)

	require.NoError(t, restored.Resume(ctx))
	assert.Equal(t, ViewQuiz, restored.State().View)
}

func TestLoadCorruptSessionFailsOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats := quiz.UserStats{TotalQuizzes: 3, TotalScore: 70, Level: 1, LastActive: fixedNow}
	raw, err := json.Marshal(stats)
	require.NoError(t, err)
	require.NoError(t, f.kv.Set(ctx, store.KeyUserStats, string(raw)))
	require.NoError(t, f.kv.Set(ctx, store.KeyActiveSession, "{not json"))

	f.ctrl.Load(ctx)

	st := f.ctrl.State()
	assert.Nil(t, st.Session)
	assert.Equal(t, 3, st.Stats.TotalQuizzes)
	assert.Equal(t, 70, st.Stats.TotalScore)
	_, ok := f.get(t, store.KeyActiveSession)
	assert.False(t, ok, "corrupt record should be removed")
	assert.Equal(t, 1, f.logs.FilterMessage("discarding persisted record").Len())
}

func TestLoadInvalidSessionFailsOpen(t *testing.T) {
	tests := []struct {
		name  string
		build func() *quiz.Session
	}{
		{name: "cursor past end", build: func() *quiz.Session {
			s := quiz.NewSession("s1", quiz.Mathematics, "", makeQuestions(2), fixedNow)
			s.Cursor = 5
			return s
		}},
		{name: "fewer answers than cursor", build: func() *quiz.Session {
			s := quiz.NewSession("s1", quiz.Mathematics, "", makeQuestions(3), fixedNow)
			s.Cursor = 2
			return s
		}},
		{name: "answer out of range", build: func() *quiz.Session {
			s := quiz.NewSession("s1", quiz.Mathematics, "", makeQuestions(3), fixedNow)
			s.Answers = []int{4}
			return s
		}},
		{name: "score disagrees with answers", build: func() *quiz.Session {
			s := quiz.NewSession("s1", quiz.Mathematics, "", makeQuestions(3), fixedNow)
			s.Cursor = 1
			s.Answers = []int{1}
			s.Score = 10
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			raw, err := json.Marshal(tt.build())
			require.NoError(t, err)
			require.NoError(t, f.kv.Set(ctx, store.KeyActiveSession, string(raw)))

			f.ctrl.Load(ctx)

			assert.Nil(t, f.ctrl.State().Session)
			_, ok := f.get(t, store.KeyActiveSession)
			assert.False(t, ok)
			assert.Equal(t, 1, f.logs.FilterMessage("discarding persisted record").Len())
			assert.ErrorIs(t, f.ctrl.Resume(ctx), quiz.ErrNoActiveSession)
		})
	}
}

func TestLoadIgnoresCompletedSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := quiz.NewSession("s1", quiz.Mathematics, "", makeQuestions(2), fixedNow)
	s.Completed = true
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, f.kv.Set(ctx, store.KeyActiveSession, string(raw)))

	f.ctrl.Load(ctx)

	assert.False(t, f.ctrl.State().HasResumable())
}

func TestLoadTimerDefaults(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{name: "missing", want: quiz.QuizDuration},
		{name: "garbage", value: "soon", set: true, want: quiz.QuizDuration},
		{name: "too large", value: "9999", set: true, want: quiz.QuizDuration},
		{name: "negative", value: "-3", set: true, want: 0},
		{name: "valid", value: "120", set: true, want: 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			s := quiz.NewSession("s1", quiz.Mathematics, "", makeQuestions(2), fixedNow)
			raw, err := json.Marshal(s)
			require.NoError(t, err)
			require.NoError(t, f.kv.Set(ctx, store.KeyActiveSession, string(raw)))
			if tt.set {
				require.NoError(t, f.kv.Set(ctx, store.KeyQuizTimer, tt.value))
			}

			f.ctrl.Load(ctx)
			assert.Equal(t, tt.want, f.ctrl.State().Remaining)
		})
	}
}

func TestLoadCorruptStatsUsesDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.kv.Set(ctx, store.KeyUserStats, "[]"))

	f.ctrl.Load(ctx)

	st := f.ctrl.State().Stats
	assert.Equal(t, 0, st.TotalQuizzes)
	assert.Equal(t, 1, st.Level)
}

func TestResumeAtZeroFinishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := quiz.NewSession("s1", quiz.Mathematics, "", makeQuestions(2), fixedNow)
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, f.kv.Set(ctx, store.KeyActiveSession, string(raw)))
	require.NoError(t, f.kv.Set(ctx, store.KeyQuizTimer, "0"))

	f.ctrl.Load(ctx)
	require.NoError(t, f.ctrl.Resume(ctx))

	st := f.ctrl.State()
	assert.Equal(t, ViewResult, st.View)
	assert.Equal(t, 1, st.Stats.TotalQuizzes)
	_, running := f.ctrl.Ticking()
	assert.False(t, running)
}

func TestResumeWithoutSession(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.ctrl.Resume(context.Background()), quiz.ErrNoActiveSession)
	assert.ErrorIs(t, f.ctrl.Discard(context.Background()), quiz.ErrNoActiveSession)
}

func TestDiscard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	f.ctrl.GoHome()
	require.NoError(t, f.ctrl.Discard(ctx))

	st := f.ctrl.State()
	assert.Nil(t, st.Session)
	assert.Equal(t, 0, st.Stats.TotalQuizzes)
	_, ok := f.get(t, store.KeyActiveSession)
	assert.False(t, ok)
	_, ok = f.get(t, store.KeyQuizTimer)
	assert.False(t, ok)
	assert.Equal(t, []store.QuizAction{store.QuizStarted, store.QuizDiscarded}, f.events.actions())
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	require.NoError(t, f.ctrl.RecordAnswer(ctx, 1))
	require.NoError(t, f.ctrl.Advance(ctx))
	require.NoError(t, f.ctrl.RecordAnswer(ctx, 0))
	require.NoError(t, f.ctrl.Advance(ctx))
	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))

	require.NoError(t, f.ctrl.Reset(ctx, false))
	st := f.ctrl.State()
	assert.Nil(t, st.Session)
	assert.Equal(t, 1, st.Stats.TotalQuizzes, "stats survive a progress-only reset")
	_, ok := f.get(t, store.KeyActiveSession)
	assert.False(t, ok)
	_, ok = f.get(t, store.KeyUserStats)
	assert.True(t, ok)

	require.NoError(t, f.ctrl.Reset(ctx, true))
	assert.Equal(t, quiz.DefaultStats(fixedNow), f.ctrl.State().Stats)
	_, ok = f.get(t, store.KeyUserStats)
	assert.False(t, ok)
}

func TestRetake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.ctrl.Retake(ctx), quiz.ErrNoActiveSession)

	require.NoError(t, f.ctrl.StartQuiz(ctx, quiz.Mathematics, realNumbers))
	first := f.ctrl.State().Session.ID
	f.ctrl.Finish(ctx, false)

	require.NoError(t, f.ctrl.Retake(ctx))
	st := f.ctrl.State()
	assert.Equal(t, ViewQuiz, st.View)
	assert.Equal(t, realNumbers, st.Session.Chapter)
	assert.NotEqual(t, first, st.Session.ID)
	assert.Equal(t, 0, st.Session.Score)
}

func TestNavigation(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.SelectSubject(quiz.SocialScience))
	st := f.ctrl.State()
	assert.Equal(t, ViewChapters, st.View)
	assert.Equal(t, quiz.SocialScience, st.Subject)

	assert.Error(t, f.ctrl.SelectSubject(quiz.Subject("Sanskrit")))

	f.ctrl.ShowLeaderboard()
	assert.Equal(t, ViewLeaderboard, f.ctrl.State().View)

	f.ctrl.GoHome()
	assert.Equal(t, ViewHome, f.ctrl.State().View)
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "quiz", ViewQuiz.String())
	assert.Equal(t, "unknown", View(99).String())
}
