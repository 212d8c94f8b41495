package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpen_File.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "quiz.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSequenceIsShared(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		got, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != i {
			t.Errorf("next = %d, want %d", got, i)
		}
	}
}

func TestSessionsJoinStartAndEnd(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	start := func(id, topic string) {
		t.Helper()
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id, Action: ActionStart, Mode: "test",
			Category: "science", Lesson: "physics", Topic: topic, Parts: 4,
		})
		if err != nil {
			t.Fatalf("start %s: %v", id, err)
		}
	}

	start("s1", "Motion")
	if err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: ActionEnd, Mode: "test",
		Category: "science", Lesson: "physics", Topic: "Motion",
		Parts: 4, Correct: 3, Wrong: 1, DurationSecs: 95,
	}); err != nil {
		t.Fatalf("end s1: %v", err)
	}
	start("s2", "Energy")

	got, err := repo.Sessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SessionID != "s2" || got[0].Ended {
		t.Errorf("newest = %+v, want unfinished s2", got[0])
	}
	if !got[1].Ended || got[1].Correct != 3 || got[1].Wrong != 1 || got[1].Duration.Seconds() != 95 {
		t.Errorf("s1 = %+v", got[1])
	}

	limited, err := repo.Sessions(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("sessions limit: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "s2" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestAnswersInOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []AnswerEventData{
		{SessionID: "s1", PromptKey: "2+2", LearnerAnswer: "four", CorrectAnswer: "4", Verdict: "wrong"},
		{SessionID: "s1", PromptKey: "2+2", LearnerAnswer: "4", CorrectAnswer: "4", Verdict: "practice_match", Practice: true},
		{SessionID: "s2", PromptKey: "pets", LearnerAnswer: "dog", CorrectAnswer: "dog;cat", Verdict: "partial"},
	}
	for _, e := range events {
		if err := repo.AppendAnswerEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.Answers(ctx, "s1")
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Verdict != "wrong" || got[1].Verdict != "practice_match" {
		t.Errorf("verdicts = %q, %q", got[0].Verdict, got[1].Verdict)
	}
	if got[0].Practice || !got[1].Practice {
		t.Errorf("practice flags = %v, %v", got[0].Practice, got[1].Practice)
	}
	if got[0].Sequence >= got[1].Sequence {
		t.Errorf("sequence not increasing: %d, %d", got[0].Sequence, got[1].Sequence)
	}
}
