// Package results shows a topic's stored result records.
package results

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	res "github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/screen"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/layout"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// Reader loads a topic's records, fastest first. *results.Store
// implements it.
type Reader interface {
	Read(ctx context.Context, p res.Path) ([]res.Record, error)
}

type resultsLoadedMsg struct {
	records []res.Record
	err     error
}

// ResultsScreen lists the recorded attempts at one topic.
type ResultsScreen struct {
	reader  Reader
	path    res.Path
	records []res.Record
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New creates a ResultsScreen for p.
func New(reader Reader, p res.Path) *ResultsScreen {
	return &ResultsScreen{reader: reader, path: p}
}

func (s *ResultsScreen) Init() tea.Cmd {
	reader, p := s.reader, s.path
	return func() tea.Msg {
		records, err := reader.Read(context.Background(), p)
		if errors.Is(err, res.ErrNotFound) {
			return resultsLoadedMsg{}
		}
		return resultsLoadedMsg{records: records, err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.records = msg.records
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading results...")
	}

	head := layout.Centered(width, theme.Selected, s.path.String())
	if len(s.records) == 0 {
		return "\n" + head + "\n\n" + layout.Centered(width, theme.Hint, "No results yet. Take a test first!")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Date", "Minutes", "Correct", "Wrong", "Missed").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.Selected.Padding(0, 1)
			case row == 0:
				return lipgloss.NewStyle().Foreground(theme.Success).Padding(0, 1)
			}
			return theme.Body.Padding(0, 1)
		})

	// Height left after the heading; rows may span several lines, so this
	// is a cap, not an exact fit.
	rows := max(height-6, 1)
	for i, r := range s.records {
		if i >= rows {
			break
		}
		missed := make([]string, 0, len(r.WrongItems))
		for _, w := range r.WrongItems {
			missed = append(missed, w.Question+" = "+w.CorrectAnswer)
		}
		t.Row(
			strconv.Itoa(i+1),
			r.Timestamp.Format(res.TimestampLayout),
			strconv.FormatFloat(r.TimeTakenMinutes, 'f', 2, 64),
			strconv.Itoa(r.CorrectAnswers),
			strconv.Itoa(r.WrongAnswers),
			strings.Join(missed, "\n"),
		)
	}
	return "\n" + head + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, t.String())
}
