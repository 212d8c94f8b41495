// Package learn shows a topic's questions with their answers, in file
// order, for reading before a test.
package learn

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/router"
	"github.com/quant-rishabh/learn-through-quiz/internal/screen"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/layout"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// ImageResolver locates question images on disk.
type ImageResolver interface {
	ImagePath(ref content.MediaRef) (string, bool)
}

// LearnScreen is a scrollable view of one topic.
type LearnScreen struct {
	topic  *content.Topic
	images ImageResolver
	offset int
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a LearnScreen. images may be nil.
func New(topic *content.Topic, images ImageResolver) *LearnScreen {
	return &LearnScreen{topic: topic, images: images}
}

func (l *LearnScreen) Init() tea.Cmd {
	return nil
}

func (l *LearnScreen) Title() string {
	return "Learn: " + l.topic.Name
}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		l.offset--
	case "down", "j":
		l.offset++
	case "pgup":
		l.offset -= 10
	case "pgdown", " ":
		l.offset += 10
	case "home", "g":
		l.offset = 0
	}
	l.offset = max(l.offset, 0)
	return l, nil
}

func (l *LearnScreen) View(width, height int) string {
	lines := strings.Split(l.render(width), "\n")
	if height <= 0 {
		return ""
	}
	maxOffset := max(len(lines)-height, 0)
	l.offset = min(l.offset, maxOffset)
	end := min(l.offset+height, len(lines))
	return strings.Join(lines[l.offset:end], "\n")
}

// render lays out every question: context, leading image, a table of
// parts and answers, then any trailing image.
func (l *LearnScreen) render(width int) string {
	var b strings.Builder
	t := l.topic
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s / %s / %s", t.Category, t.Lesson, t.Name)))
	b.WriteString("\n")

	for i, q := range t.Questions {
		head := fmt.Sprintf("%d.", i+1)
		if q.Context != "" {
			head += " " + q.Context
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Width(max(width-4, 10)).Render(head))
		b.WriteString("\n")
		if q.ImageFirst() {
			b.WriteString(l.mediaLine(t.Media(q.Image)) + "\n")
		}

		tbl := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			Headers("Prompt", "Answer", "Info").
			Width(min(width-2, 100)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return theme.Selected.Padding(0, 1)
				}
				if col == 2 {
					return theme.Info.Padding(0, 1)
				}
				return theme.Body.Padding(0, 1)
			})
		for _, p := range q.Parts {
			tbl.Row(p.Key, p.Spec.Display(), p.Spec.Info)
		}
		b.WriteString(tbl.String())
		b.WriteString("\n")

		if q.Image != "" && !q.ImageFirst() {
			b.WriteString(l.mediaLine(t.Media(q.Image)) + "\n")
		}
	}
	return b.String()
}

func (l *LearnScreen) mediaLine(ref content.MediaRef) string {
	if l.images == nil {
		return theme.Media.Render("[image] " + ref.Name)
	}
	p, ok := l.images.ImagePath(ref)
	if !ok {
		return theme.Incorrect.Render("[image missing] " + p)
	}
	return theme.Media.Render("[image] " + p)
}
