package session

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/store"
)

// loadSession restores the in-progress session. Records that fail to decode
// or validate are removed so the next start is clean.
func (c *Controller) loadSession(ctx context.Context) *quiz.Session {
	raw, ok, err := c.kv.Get(ctx, store.KeyActiveSession)
	if err != nil {
		c.logger.Warn("read active session", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var s quiz.Session
	decodeErr := json.Unmarshal([]byte(raw), &s)
	if decodeErr == nil {
		decodeErr = s.Validate()
	}
	if decodeErr != nil {
		c.dropCorrupt(ctx, store.KeyActiveSession, decodeErr)
		return nil
	}
	if s.Completed {
		return nil
	}
	return &s
}

func (c *Controller) loadTimer(ctx context.Context) int {
	raw, ok, err := c.kv.Get(ctx, store.KeyQuizTimer)
	if err != nil {
		c.logger.Warn("read quiz timer", zap.Error(err))
		return quiz.QuizDuration
	}
	if !ok {
		return quiz.QuizDuration
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.dropCorrupt(ctx, store.KeyQuizTimer, err)
		return quiz.QuizDuration
	}
	return clampSeconds(n)
}

func (c *Controller) loadStats(ctx context.Context) quiz.UserStats {
	defaults := quiz.DefaultStats(c.now())
	raw, ok, err := c.kv.Get(ctx, store.KeyUserStats)
	if err != nil {
		c.logger.Warn("read user stats", zap.Error(err))
		return defaults
	}
	if !ok {
		return defaults
	}
	var stats quiz.UserStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		c.logger.Warn("ignoring unreadable user stats",
			zap.Error(&quiz.CorruptRecordError{Key: store.KeyUserStats, Err: err}))
		return defaults
	}
	return stats
}

func (c *Controller) dropCorrupt(ctx context.Context, key string, err error) {
	c.logger.Warn("discarding persisted record",
		zap.Error(&quiz.CorruptRecordError{Key: key, Err: err}))
	if rmErr := c.kv.Remove(ctx, key); rmErr != nil {
		c.logger.Warn("remove corrupt record", zap.String("key", key), zap.Error(rmErr))
	}
}

// persistProgress writes the active session and its timer. A completed or
// absent session clears both keys instead.
func (c *Controller) persistProgress(ctx context.Context) {
	s := c.state.Session
	if !s.Active() {
		c.clearProgress(ctx)
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		c.logger.Error("encode active session", zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, store.KeyActiveSession, string(data)); err != nil {
		c.logger.Warn("save active session", zap.Error(err))
	}
	c.persistTimer(ctx)
}

func (c *Controller) persistTimer(ctx context.Context) {
	if err := c.kv.Set(ctx, store.KeyQuizTimer, strconv.Itoa(c.timer.Remaining())); err != nil {
		c.logger.Warn("save quiz timer", zap.Error(err))
	}
}

func (c *Controller) clearProgress(ctx context.Context) {
	for _, key := range []string{store.KeyActiveSession, store.KeyQuizTimer} {
		if err := c.kv.Remove(ctx, key); err != nil {
			c.logger.Warn("remove persisted record", zap.String("key", key), zap.Error(err))
		}
	}
}

func (c *Controller) persistStats(ctx context.Context) {
	data, err := json.Marshal(c.state.Stats)
	if err != nil {
		c.logger.Error("encode user stats", zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, store.KeyUserStats, string(data)); err != nil {
		c.logger.Warn("save user stats", zap.Error(err))
	}
}

func (c *Controller) recordEvent(ctx context.Context, action store.QuizAction, forced bool) {
	if c.events == nil || c.state.Session == nil {
		return
	}
	s := c.state.Session
	data := store.QuizEventData{
		SessionID:    s.ID,
		Action:       action,
		Subject:      string(s.Subject),
		Chapter:      s.Chapter,
		Score:        s.Score,
		Correct:      s.Correct(),
		Total:        len(s.Questions),
		Forced:       forced,
		DurationSecs: int64(quiz.QuizDuration - c.timer.Remaining()),
	}
	if err := c.events.AppendQuizEvent(ctx, data); err != nil {
		c.logger.Warn("record quiz event", zap.String("action", string(action)), zap.Error(err))
	}
}
