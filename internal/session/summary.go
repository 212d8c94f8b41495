package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quant-rishabh/learn-through-quiz/internal/results"
)

// Summary is the outcome of a completed session.
type Summary struct {
	SessionID string
	Path      results.Path
	Start     time.Time
	End       time.Time
	Correct   int
	Wrong     int
	Outcomes  []Outcome
}

// Elapsed is the wall time between start and completion.
func (s Summary) Elapsed() time.Duration {
	return s.End.Sub(s.Start)
}

// Accuracy is the fraction of parts answered correctly.
func (s Summary) Accuracy() float64 {
	total := s.Correct + s.Wrong
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total)
}

// WrongItems lists the wrong parts with their accepted answers.
func (s Summary) WrongItems() []results.WrongItem {
	items := []results.WrongItem{}
	for _, o := range s.Outcomes {
		if !o.Correct {
			items = append(items, results.WrongItem{Question: o.Key, CorrectAnswer: o.CorrectAnswer})
		}
	}
	return items
}

// Record converts the summary into a result record.
func (s Summary) Record() results.Record {
	return results.NewRecord(s.End, s.Elapsed(), s.Correct, s.Wrong, s.WrongItems())
}

// Recorder persists completed sessions. *results.Store implements it.
type Recorder interface {
	Append(ctx context.Context, p results.Path, rec results.Record) error
	BumpLearningCount(ctx context.Context, p results.Path) error
}

// Finalize writes the result record and bumps the learning count. A failed
// step is reported as a *results.PersistenceError; calling Finalize again
// resumes from that step, so a record is never appended twice.
func (s *Session) Finalize(ctx context.Context, rec Recorder) error {
	if s.phase != PhaseComplete {
		return ErrSessionIncomplete
	}
	sum := *s.summary

	if !s.appended {
		if err := rec.Append(ctx, sum.Path, sum.Record()); err != nil {
			s.logger.Error("append result failed", zapPath(sum.Path), zapErr(err))
			return fmt.Errorf("finalize session: %w", asPersistence("append", sum.Path, err))
		}
		s.appended = true
	}
	if !s.bumped {
		if err := rec.BumpLearningCount(ctx, sum.Path); err != nil {
			s.logger.Error("bump learning count failed", zapPath(sum.Path), zapErr(err))
			return fmt.Errorf("finalize session: %w", asPersistence("bump", sum.Path, err))
		}
		s.bumped = true
	}
	return nil
}

func asPersistence(op string, p results.Path, err error) error {
	var perr *results.PersistenceError
	if errors.As(err, &perr) {
		return err
	}
	return &results.PersistenceError{Op: op, Path: p.String(), Err: err}
}
