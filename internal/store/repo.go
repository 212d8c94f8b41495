package store

import (
	"context"
	"time"
)

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// SessionEventData captures a session starting or ending.
type SessionEventData struct {
	SessionID    string
	Action       string
	Mode         string
	Category     string
	Lesson       string
	Topic        string
	Parts        int
	Correct      int
	Wrong        int
	DurationSecs int
}

// AnswerEventData captures one graded submission.
type AnswerEventData struct {
	SessionID     string
	PromptKey     string
	LearnerAnswer string
	CorrectAnswer string
	Verdict       string
	Practice      bool
}

// SessionRecord is one journaled session, joined from its start and end
// events. Ended is false for sessions that were abandoned.
type SessionRecord struct {
	SessionID string
	Mode      string
	Category  string
	Lesson    string
	Topic     string
	Parts     int
	StartedAt time.Time
	Ended     bool
	EndedAt   time.Time
	Correct   int
	Wrong     int
	Duration  time.Duration
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// EventRepo provides append and query access to journal events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a graded submission.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// Sessions lists sessions, newest first.
	Sessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// Answers lists a session's answer events in the order they happened.
	Answers(ctx context.Context, sessionID string) ([]AnswerRecord, error)
}
