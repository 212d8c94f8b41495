package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/session"
)

func testSummary() session.Summary {
	start := time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)
	return session.Summary{
		SessionID: "test-session",
		Path:      results.Path{Category: "science", Lesson: "physics", Topic: "Motion"},
		Start:     start,
		End:       start.Add(90 * time.Second),
		Correct:   3,
		Wrong:     1,
		Outcomes: []session.Outcome{
			{Key: "speed", Correct: true, CorrectAnswer: "distance / time"},
			{Key: "angle", CorrectAnswer: "30@degrees"},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 30)
	for _, want := range []string{"science/physics/Motion", "1:30", "1.50", "angle", "75%"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestSummaryScreen_NothingMissed(t *testing.T) {
	sum := testSummary()
	sum.Wrong = 0
	sum.Outcomes = sum.Outcomes[:1]
	view := New(sum).View(100, 30)
	if !strings.Contains(view, "Nothing missed.") {
		t.Error("expected a clean-run message")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg on Esc")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
