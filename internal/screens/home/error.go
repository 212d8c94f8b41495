package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/screen"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/layout"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// errorScreen reports a failure to open something; any key goes back.
type errorScreen struct {
	title string
	err   error
}

func newErrorScreen(title string, err error) *errorScreen {
	return &errorScreen{title: title, err: err}
}

func (e *errorScreen) Init() tea.Cmd { return nil }

func (e *errorScreen) Title() string { return e.title }

func (e *errorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return e, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return e, nil
}

func (e *errorScreen) View(width, height int) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		"\n\n\nError: "+e.err.Error()+"\n\nPress any key to go back.")
}
