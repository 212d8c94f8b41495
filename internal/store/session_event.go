package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, timestamp, session_id, action, mode, category, lesson, topic,
			 parts, correct_answers, wrong_answers, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.Action, data.Mode,
		data.Category, data.Lesson, data.Topic,
		data.Parts, data.Correct, data.Wrong, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(sequence, timestamp, session_id, prompt_key, learner_answer, correct_answer, verdict, practice)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.PromptKey,
		data.LearnerAnswer, data.CorrectAnswer, data.Verdict, data.Practice,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) Sessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	var (
		where []string
		args  []any
	)
	if !opts.From.IsZero() {
		where = append(where, "s.timestamp >= ?")
		args = append(args, opts.From.UTC())
	}
	if !opts.To.IsZero() {
		where = append(where, "s.timestamp <= ?")
		args = append(args, opts.To.UTC())
	}

	q := `SELECT s.session_id, s.mode, s.category, s.lesson, s.topic, s.parts, s.timestamp,
			e.timestamp, e.correct_answers, e.wrong_answers, e.duration_secs
		FROM session_events s
		LEFT JOIN session_events e ON e.session_id = s.session_id AND e.action = 'end'
		WHERE s.action = 'start'`
	if len(where) > 0 {
		q += " AND " + strings.Join(where, " AND ")
	}
	q += " ORDER BY s.sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec      SessionRecord
			endedAt  sql.NullTime
			correct  sql.NullInt64
			wrong    sql.NullInt64
			duration sql.NullInt64
		)
		if err := rows.Scan(&rec.SessionID, &rec.Mode, &rec.Category, &rec.Lesson, &rec.Topic,
			&rec.Parts, &rec.StartedAt, &endedAt, &correct, &wrong, &duration); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if endedAt.Valid {
			rec.Ended = true
			rec.EndedAt = endedAt.Time
			rec.Correct = int(correct.Int64)
			rec.Wrong = int(wrong.Int64)
			rec.Duration = time.Duration(duration.Int64) * time.Second
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) Answers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, prompt_key, learner_answer, correct_answer, verdict, practice
		FROM answer_events WHERE session_id = ? ORDER BY sequence`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &a.PromptKey,
			&a.LearnerAnswer, &a.CorrectAnswer, &a.Verdict, &a.Practice); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
