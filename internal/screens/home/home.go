// Package home holds the root menu and the category, lesson and topic
// pickers that lead into the other screens.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/screen"
	"github.com/quant-rishabh/learn-through-quiz/internal/screens/history"
	"github.com/quant-rishabh/learn-through-quiz/internal/screens/learn"
	"github.com/quant-rishabh/learn-through-quiz/internal/screens/overview"
	resultsscreen "github.com/quant-rishabh/learn-through-quiz/internal/screens/results"
	sessionscreen "github.com/quant-rishabh/learn-through-quiz/internal/screens/session"
	"github.com/quant-rishabh/learn-through-quiz/internal/session"
	"github.com/quant-rishabh/learn-through-quiz/internal/store"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/components"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

const banner = `┏━┓╻ ╻╻╺━┓┏┳┓┏━┓┏━┓╺┳╸┏━╸┏━┓
┃┓┃┃ ┃┃┏━┛┃┃┃┣━┫┗━┓ ┃ ┣╸ ┣┳┛
┗┻┛┗━┛╹┗━╸╹ ╹╹ ╹┗━┛ ╹ ┗━╸╹┗╸`

// Services are the dependencies the screens reached from home share.
type Services struct {
	Content *content.Store
	Results *results.Store

	// Journal is optional; without it the history entry is disabled.
	Journal store.EventRepo

	// Session is the template every quiz starts from.
	Session session.Options
}

// HomeScreen is the root menu.
type HomeScreen struct {
	svc  Services
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc Services) *HomeScreen {
	h := &HomeScreen{svc: svc}

	items := []components.MenuItem{
		{Label: "Take a test", Detail: "answer, then practice what you missed", Action: func() tea.Cmd {
			return h.chooseTopic("Take a test", func(t *content.Topic) screen.Screen {
				opts := h.svc.Session
				opts.Mode = "test"
				return sessionscreen.New(t, opts, h.svc.Results, h.svc.Content)
			})
		}},
		{Label: "Learn a topic", Detail: "read every question with its answer", Action: func() tea.Cmd {
			return h.chooseTopic("Learn a topic", func(t *content.Topic) screen.Screen {
				return learn.New(t, h.svc.Content)
			})
		}},
		{Label: "View results", Detail: "past attempts, fastest first", Action: func() tea.Cmd {
			return h.chooseTopic("View results", func(t *content.Topic) screen.Screen {
				return resultsscreen.New(h.svc.Results, results.Path{Category: t.Category, Lesson: t.Lesson, Topic: t.Name})
			})
		}},
		{Label: "Learning overview", Detail: "how often each topic was completed", Action: func() tea.Cmd {
			return push(overview.New(h.svc.Content, h.svc.Results))
		}},
		{Label: "History", Detail: "journaled sessions", Disabled: svc.Journal == nil, Action: func() tea.Cmd {
			return push(history.New(h.svc.Journal))
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string
	if height >= 16 {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner))
	} else {
		sections = append(sections, theme.Title.Render("QUIZMASTER"))
	}
	sections = append(sections, h.menu.View())

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 3).
		Render(strings.Join(sections, "\n\n"))
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// chooseTopic walks category, lesson and topic pickers, then pushes the
// screen built by open.
func (h *HomeScreen) chooseTopic(title string, open func(*content.Topic) screen.Screen) tea.Cmd {
	cs := h.svc.Content
	return push(NewPicker(title, "Select a category", cs.ListCategories, func(category string) tea.Cmd {
		return push(NewPicker(title, "Select a lesson in "+category, func() ([]string, error) {
			return cs.ListLessons(category)
		}, func(lesson string) tea.Cmd {
			return push(NewPicker(title, "Select a topic in "+category+"/"+lesson, func() ([]string, error) {
				l, err := cs.LoadLesson(category, lesson)
				if err != nil {
					return nil, err
				}
				return l.Topics(), nil
			}, func(topic string) tea.Cmd {
				return func() tea.Msg {
					t, err := cs.LoadTopic(category, lesson, topic)
					if err != nil {
						return router.PushScreenMsg{Screen: newErrorScreen(title, err)}
					}
					return router.PushScreenMsg{Screen: open(t)}
				}
			}))
		}))
	}))
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}
