package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/screen"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/components"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/layout"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

type optionsLoadedMsg struct {
	options []string
	err     error
}

// PickerScreen lists options loaded by load and hands the chosen one to
// pick. It backs every step of the category, lesson and topic walk.
type PickerScreen struct {
	title  string
	prompt string
	load   func() ([]string, error)
	pick   func(string) tea.Cmd

	menu   components.Menu
	loaded bool
	empty  bool
	errMsg string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// NewPicker creates a PickerScreen.
func NewPicker(title, prompt string, load func() ([]string, error), pick func(string) tea.Cmd) *PickerScreen {
	return &PickerScreen{title: title, prompt: prompt, load: load, pick: pick}
}

func (p *PickerScreen) Init() tea.Cmd {
	load := p.load
	return func() tea.Msg {
		opts, err := load()
		return optionsLoadedMsg{options: opts, err: err}
	}
}

func (p *PickerScreen) Title() string {
	return p.title
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-9", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case optionsLoadedMsg:
		p.loaded = true
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		p.empty = len(msg.options) == 0
		items := make([]components.MenuItem, 0, len(msg.options))
		for _, o := range msg.options {
			items = append(items, components.MenuItem{
				Label:  o,
				Action: func() tea.Cmd { return p.pick(o) },
			})
		}
		p.menu = components.NewMenu(items)
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if !p.loaded || p.errMsg != "" {
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	switch {
	case p.errMsg != "":
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+p.errMsg)
	case !p.loaded:
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\nLoading...")
	case p.empty:
		return layout.Centered(width, theme.Hint, "\n\nNothing here yet.")
	}

	body := theme.Selected.Render(p.prompt) + "\n\n" + p.menu.View()
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}
