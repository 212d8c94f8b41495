package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/results"
)

type pickedMsg string

func testMenu() Menu {
	item := func(label string, disabled bool) MenuItem {
		return MenuItem{Label: label, Disabled: disabled, Action: func() tea.Cmd {
			return func() tea.Msg { return pickedMsg(label) }
		}}
	}
	return NewMenu([]MenuItem{item("first", true), item("second", false), item("third", false)})
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := testMenu()
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want to stay off the disabled item", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
}

func TestMenu_EnterAndDigits(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || cmd() != pickedMsg("second") {
		t.Error("expected Enter to run the selected action")
	}

	m, cmd = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil || cmd() != pickedMsg("third") || m.Selected != 2 {
		t.Error("expected 3 to jump to and run the third item")
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if cmd != nil {
		t.Error("expected disabled items to ignore their digit")
	}
}

func TestMenu_View(t *testing.T) {
	view := testMenu().View()
	for _, want := range []string{"1. first", "▸ 2. second", "3. third"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in menu view:\n%s", want, view)
		}
	}
}

func TestCountsTree(t *testing.T) {
	out := CountsTree(results.Counts{{Name: "science", Lessons: []results.LessonCounts{
		{Name: "physics", Topics: []results.TopicCount{{Name: "Motion", Count: 2}, {Name: "Energy"}}},
	}}})
	for _, want := range []string{"science", "physics", "Motion", "(2)", "Energy", "(0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in tree:\n%s", want, out)
		}
	}
}

func TestProgressBar_Figures(t *testing.T) {
	count := NewProgressBar("Question 3", 2, 5, 40).WithFigure(FigureCount).View()
	if !strings.Contains(count, "Question 3") || !strings.Contains(count, "2/5") {
		t.Errorf("expected label and count figure, got %q", count)
	}

	pct := NewProgressBar("", 3, 4, 30).WithFigure(FigurePercent).View()
	if !strings.Contains(pct, "75%") {
		t.Errorf("expected percent figure, got %q", pct)
	}

	if plain := NewProgressBar("", 1, 2, 20).View(); strings.Contains(plain, "%") || strings.Contains(plain, "/") {
		t.Errorf("expected no figure, got %q", plain)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{3, 2, 1},
		{-1, 4, 0},
		{1, 0, 0},
		{1, 4, 0.25},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 20).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}

	over := NewProgressBar("", 7, 5, 20).WithFigure(FigureCount).View()
	if !strings.Contains(over, "5/5") {
		t.Errorf("expected count clamped to total, got %q", over)
	}
	if NewProgressBar("Q", 1, 2, 2).View() == "" {
		t.Error("expected a minimum-width bar")
	}
}
