package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var quizEventFields = []string{
	"id", "sequence", "timestamp", "session_id", "action", "subject", "chapter",
	"score", "correct", "total", "forced", "duration_secs",
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(quizEventTable).
		Columns(quizEventFields[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, string(data.Action),
			data.Subject, data.Chapter, data.Score, data.Correct, data.Total,
			data.Forced, data.DurationSecs,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(quizEventFields...).
		From(entsql.Table(quizEventTable)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var events []QuizEvent
	for rows.Next() {
		var (
			e      QuizEvent
			action string
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &action, &e.Subject,
			&e.Chapter, &e.Score, &e.Correct, &e.Total, &e.Forced, &e.DurationSecs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		e.Action = QuizAction(action)
		events = append(events, e)
	}
	return events, rows.Err()
}
