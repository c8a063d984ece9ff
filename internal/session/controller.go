package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/store"
)

// Options configures a Controller.
type Options struct {
	Store  store.KV
	Source Source

	// Events is optional.
	Events EventRecorder

	// Logger is optional; a no-op logger is used when nil.
	Logger *zap.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Controller is the quiz state machine. It is driven from a single
// goroutine (the TUI update loop); only StartRequest.Fetch may run elsewhere.
type Controller struct {
	kv     store.KV
	source Source
	events EventRecorder
	logger *zap.Logger
	now    func() time.Time

	state State
	timer *Timer

	inflight *semaphore.Weighted
	pending  *StartRequest
	nextReq  uint64
}

// New creates a controller on the home view with default stats. Call Load
// to restore persisted state.
func New(opts Options) *Controller {
	c := &Controller{
		kv:       opts.Store,
		source:   opts.Source,
		events:   opts.Events,
		logger:   opts.Logger,
		now:      opts.Clock,
		timer:    NewTimer(quiz.QuizDuration),
		inflight: semaphore.NewWeighted(1),
	}
	if c.kv == nil {
		c.kv = store.NewMemoryKV()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.state.Stats = quiz.DefaultStats(c.now())
	return c
}

// Logger returns the logger screens use to report rejected gestures.
func (c *Controller) Logger() *zap.Logger {
	return c.logger
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Remaining = c.timer.Remaining()
	return s
}

// Ticking returns the generation ticks must carry, and whether the countdown
// is running at all.
func (c *Controller) Ticking() (uint64, bool) {
	return c.timer.Generation(), c.timer.Running()
}

// Load restores the persisted session, timer and stats. Unreadable records
// are logged and treated as absent; Load never fails.
func (c *Controller) Load(ctx context.Context) {
	c.state.Stats = c.loadStats(ctx)
	c.state.Session = c.loadSession(ctx)
	c.timer.Reset(c.loadTimer(ctx))
	if c.state.Session == nil {
		c.timer.Reset(quiz.QuizDuration)
	}
	c.logger.Debug("state loaded",
		zap.Bool("resumable", c.state.Session != nil),
		zap.Int("remaining", c.timer.Remaining()),
		zap.Int("total_quizzes", c.state.Stats.TotalQuizzes))
}

// StartRequest is a pending quiz start. It is issued by BeginStart and
// settled by CompleteStart or invalidated by CancelStart.
type StartRequest struct {
	id      uint64
	Subject quiz.Subject
	Chapter string

	ctx    context.Context
	cancel context.CancelFunc
	source Source
}

// Fetch asks the question source for a batch. Safe to call off the UI
// goroutine.
func (r *StartRequest) Fetch() ([]quiz.Question, error) {
	if r.source == nil {
		return nil, &quiz.ProviderError{Subject: r.Subject, Chapter: r.Chapter, Err: errors.New("no question source")}
	}
	batch, err := r.source.Select(r.ctx, r.Subject, r.Chapter)
	if err != nil {
		return nil, err
	}
	return batch.Questions, nil
}

// StartQuiz fetches questions and starts a quiz in one synchronous call.
func (c *Controller) StartQuiz(ctx context.Context, subject quiz.Subject, chapter string) error {
	req, err := c.BeginStart(ctx, subject, chapter)
	if err != nil {
		return err
	}
	questions, err := req.Fetch()
	return c.CompleteStart(ctx, req, questions, err)
}

// BeginStart marks a quiz start as pending. Only one start may be pending at
// a time.
func (c *Controller) BeginStart(ctx context.Context, subject quiz.Subject, chapter string) (*StartRequest, error) {
	if !subject.Valid() {
		return nil, &quiz.ProviderError{Subject: subject, Chapter: chapter, Err: errors.New("unknown subject")}
	}
	if !c.inflight.TryAcquire(1) {
		return nil, quiz.ErrGenerationInProgress
	}
	c.nextReq++
	reqCtx, cancel := context.WithCancel(ctx)
	req := &StartRequest{
		id:      c.nextReq,
		Subject: subject,
		Chapter: chapter,
		ctx:     reqCtx,
		cancel:  cancel,
		source:  c.source,
	}
	c.pending = req
	c.state.Generating = true
	c.state.Err = ""
	return req, nil
}

// CompleteStart settles a pending start with the fetched questions or the
// fetch error. On failure the existing session and stats are left untouched.
func (c *Controller) CompleteStart(ctx context.Context, req *StartRequest, questions []quiz.Question, fetchErr error) error {
	if req == nil || c.pending == nil || req.id != c.pending.id {
		return quiz.ErrStaleRequest
	}
	c.settlePending()

	err := fetchErr
	if err == nil && len(questions) == 0 {
		err = quiz.ErrNoQuestionsAvailable
	}
	if err != nil {
		c.state.Err = "Unable to load questions: " + err.Error()
		c.logger.Warn("quiz start failed",
			zap.String("subject", string(req.Subject)),
			zap.String("chapter", req.Chapter),
			zap.Error(err))
		return err
	}

	c.timer.Stop()
	c.state.Session = quiz.NewSession(uuid.NewString(), req.Subject, req.Chapter, questions, c.now())
	c.timer.Reset(quiz.QuizDuration)
	c.persistProgress(ctx)
	c.recordEvent(ctx, store.QuizStarted, false)
	c.state.View = ViewQuiz
	c.timer.Start()
	c.logger.Info("quiz started",
		zap.String("session_id", c.state.Session.ID),
		zap.String("topic", c.state.Session.Topic()),
		zap.Int("questions", len(questions)))
	return nil
}

// CancelStart drops the pending start, if any. Its eventual CompleteStart
// returns ErrStaleRequest.
func (c *Controller) CancelStart() {
	if c.pending == nil {
		return
	}
	c.settlePending()
}

func (c *Controller) settlePending() {
	c.pending.cancel()
	c.pending = nil
	c.state.Generating = false
	c.inflight.Release(1)
}

// RecordAnswer records the chosen option for the current question.
func (c *Controller) RecordAnswer(ctx context.Context, option int) error {
	s := c.state.Session
	if !s.Active() {
		return quiz.ErrNoActiveSession
	}
	if option < 0 || option >= quiz.OptionCount {
		return quiz.ErrInvalidOption
	}
	if s.Answered() {
		return quiz.ErrAlreadyAnswered
	}
	s.Answers = append(s.Answers, option)
	if s.Current().IsCorrect(option) {
		s.Score += quiz.PointsPerCorrect
	}
	c.persistProgress(ctx)
	return nil
}

// Advance moves to the next question, or finishes the quiz from the last one.
func (c *Controller) Advance(ctx context.Context) error {
	s := c.state.Session
	if !s.Active() {
		return quiz.ErrNoActiveSession
	}
	if !s.Answered() {
		return quiz.ErrNotAnswered
	}
	if s.AtLast() {
		c.Finish(ctx, false)
		return nil
	}
	s.Cursor++
	c.persistProgress(ctx)
	return nil
}

// Finish completes the active quiz and folds its score into the stats. It
// is a no-op when there is no active quiz. forced marks a countdown expiry.
func (c *Controller) Finish(ctx context.Context, forced bool) {
	s := c.state.Session
	if !s.Active() {
		return
	}
	c.timer.Stop()

	c.state.Stats = c.state.Stats.Record(s.Score, c.now())
	c.persistStats(ctx)

	s.Completed = true
	c.clearProgress(ctx)
	c.state.View = ViewResult
	c.recordEvent(ctx, store.QuizFinished, forced)
	c.logger.Info("quiz finished",
		zap.String("session_id", s.ID),
		zap.Int("score", s.Score),
		zap.Int("max_score", s.MaxScore()),
		zap.Bool("forced", forced))
}

// Resume returns to an unfinished quiz and restarts its countdown.
func (c *Controller) Resume(ctx context.Context) error {
	if !c.state.Session.Active() {
		return quiz.ErrNoActiveSession
	}
	c.CancelStart()
	c.state.View = ViewQuiz
	c.timer.Start()
	if c.timer.Remaining() == 0 {
		c.Finish(ctx, true)
	}
	return nil
}

// Discard throws away the unfinished quiz. Confirmation is up to the caller.
func (c *Controller) Discard(ctx context.Context) error {
	if !c.state.Session.Active() {
		return quiz.ErrNoActiveSession
	}
	c.timer.Stop()
	c.recordEvent(ctx, store.QuizDiscarded, false)
	c.clearProgress(ctx)
	c.state.Session = nil
	c.timer.Reset(quiz.QuizDuration)
	if c.state.View == ViewQuiz {
		c.state.View = ViewHome
	}
	return nil
}

// Reset drops any unfinished quiz. With clearStats it also returns the
// cumulative stats to their defaults; this is the only path that removes
// the stats record.
func (c *Controller) Reset(ctx context.Context, clearStats bool) error {
	if c.state.Session.Active() {
		if err := c.Discard(ctx); err != nil {
			return err
		}
	} else {
		c.clearProgress(ctx)
	}
	if !clearStats {
		return nil
	}
	c.state.Stats = quiz.DefaultStats(c.now())
	if err := c.kv.Remove(ctx, store.KeyUserStats); err != nil {
		return fmt.Errorf("remove %s: %w", store.KeyUserStats, err)
	}
	return nil
}

// Retake starts a fresh quiz on the finished quiz's topic.
func (c *Controller) Retake(ctx context.Context) error {
	s := c.state.Session
	if s == nil || !s.Completed {
		return quiz.ErrNoActiveSession
	}
	return c.StartQuiz(ctx, s.Subject, s.Chapter)
}

// RetakeRequest is the asynchronous form of Retake.
func (c *Controller) RetakeRequest(ctx context.Context) (*StartRequest, error) {
	s := c.state.Session
	if s == nil || !s.Completed {
		return nil, quiz.ErrNoActiveSession
	}
	return c.BeginStart(ctx, s.Subject, s.Chapter)
}

// SelectSubject opens the chapter list for a subject.
func (c *Controller) SelectSubject(subject quiz.Subject) error {
	if !subject.Valid() {
		return quiz.ErrInvalidOption
	}
	c.state.Subject = subject
	c.state.View = ViewChapters
	return nil
}

// ShowLeaderboard opens the leaderboard.
func (c *Controller) ShowLeaderboard() {
	c.leaveQuiz()
	c.state.View = ViewLeaderboard
}

// GoHome returns to the home view. An unfinished quiz stays resumable with
// its countdown paused.
func (c *Controller) GoHome() {
	c.leaveQuiz()
	c.state.View = ViewHome
}

// DismissError clears the user-facing error.
func (c *Controller) DismissError() {
	c.state.Err = ""
}

func (c *Controller) leaveQuiz() {
	c.CancelStart()
	if c.timer.Running() {
		c.timer.Stop()
	}
}

// Tick advances the countdown by one second. It reports whether another tick
// should be scheduled. Ticks are ignored outside the quiz view or when gen
// is stale. Reaching zero finishes the quiz exactly once.
func (c *Controller) Tick(ctx context.Context, gen uint64) bool {
	if c.state.View != ViewQuiz || !c.state.Session.Active() {
		return false
	}
	if !c.timer.Tick(gen) {
		return false
	}
	if c.timer.Remaining() == 0 {
		c.Finish(ctx, true)
		return false
	}
	c.persistProgress(ctx)
	return true
}
