// Package overview shows how many times each topic has been completed.
package overview

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/screen"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/components"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/layout"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// Cataloger lists every loadable topic. *content.Store implements it.
type Cataloger interface {
	Catalog() (content.Catalog, []error, error)
}

// Counter keeps the learning-count table. *results.Store implements it.
type Counter interface {
	SyncTopics(ctx context.Context, topics []results.Path) (int, error)
	LearningCounts(ctx context.Context) (results.Counts, error)
}

// Load adds a zero entry for every topic found on disk, then reads the
// table back. Lessons that failed to load are returned in skipped.
func Load(ctx context.Context, cat Cataloger, counter Counter) (counts results.Counts, skipped []error, err error) {
	catalog, skipped, err := cat.Catalog()
	if err != nil {
		return nil, nil, err
	}
	var paths []results.Path
	for _, t := range catalog.Topics() {
		paths = append(paths, results.Path{Category: t[0], Lesson: t[1], Topic: t[2]})
	}
	if _, err := counter.SyncTopics(ctx, paths); err != nil {
		return nil, skipped, err
	}
	counts, err = counter.LearningCounts(ctx)
	return counts, skipped, err
}

type countsLoadedMsg struct {
	counts  results.Counts
	skipped []error
	err     error
}

// OverviewScreen renders the learning-count table.
type OverviewScreen struct {
	catalog Cataloger
	counter Counter

	rendered string
	skipped  []error
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*OverviewScreen)(nil)
var _ screen.KeyHintProvider = (*OverviewScreen)(nil)

// New creates an OverviewScreen.
func New(catalog Cataloger, counter Counter) *OverviewScreen {
	return &OverviewScreen{catalog: catalog, counter: counter}
}

func (o *OverviewScreen) Init() tea.Cmd {
	catalog, counter := o.catalog, o.counter
	return func() tea.Msg {
		counts, skipped, err := Load(context.Background(), catalog, counter)
		return countsLoadedMsg{counts: counts, skipped: skipped, err: err}
	}
}

func (o *OverviewScreen) Title() string {
	return "Learning Overview"
}

func (o *OverviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (o *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countsLoadedMsg:
		o.loaded = true
		if msg.err != nil {
			o.errMsg = msg.err.Error()
			return o, nil
		}
		o.rendered = components.CountsTree(msg.counts)
		o.skipped = msg.skipped
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return o, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			o.offset = max(o.offset-1, 0)
		case "down", "j":
			o.offset++
		}
	}
	return o, nil
}

func (o *OverviewScreen) View(width, height int) string {
	if o.errMsg != "" {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+o.errMsg)
	}
	if !o.loaded {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Counting...")
	}

	lines := strings.Split(o.rendered, "\n")
	for _, err := range o.skipped {
		lines = append(lines, theme.Incorrect.Render("skipped: "+err.Error()))
	}
	o.offset = min(o.offset, max(len(lines)-height, 0))
	end := min(o.offset+height, len(lines))
	return strings.Join(lines[o.offset:end], "\n")
}
