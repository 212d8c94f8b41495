package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"charm.land/lipgloss/v2/tree"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/session"
	"github.com/quant-rishabh/learn-through-quiz/internal/store"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/components"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Selected.Padding(0, 1)
			}
			return theme.Body.Padding(0, 1)
		})
}

// ShowTopic prints every question of topic with its answers, for learn
// mode. Images are announced where a quiz would show them.
func (c *Console) ShowTopic(topic *content.Topic) {
	c.println(theme.Title.Render(fmt.Sprintf("%s / %s / %s", topic.Category, topic.Lesson, topic.Name)))
	for i, q := range topic.Questions {
		c.println("")
		head := fmt.Sprintf("%d.", i+1)
		if q.Context != "" {
			head += " " + q.Context
		}
		c.println(theme.Subtitle.Render(head))
		if q.ImageFirst() {
			c.showMedia(topic.Media(q.Image))
		}

		t := newTable("Prompt", "Answer", "Info")
		for _, p := range q.Parts {
			t.Row(p.Key, p.Spec.Display(), p.Spec.Info)
		}
		c.println(t.String())

		if q.Image != "" && !q.ImageFirst() {
			c.showMedia(topic.Media(q.Image))
		}
	}
}

// PrintSummary prints a finished session's score and wrong items.
func (c *Console) PrintSummary(s session.Summary) {
	c.println("")
	c.println(theme.Title.Render("Session complete"))
	c.printf("%s %s   %s %s   %s %s\n",
		theme.Hint.Render("correct"), theme.Correct.Render(strconv.Itoa(s.Correct)),
		theme.Hint.Render("wrong"), theme.Incorrect.Render(strconv.Itoa(s.Wrong)),
		theme.Hint.Render("time"), theme.Body.Render(formatMinutes(results.RoundMinutes(s.Elapsed()))),
	)
	items := s.WrongItems()
	if len(items) == 0 {
		return
	}
	t := newTable("Prompt", "Correct answer")
	for _, it := range items {
		t.Row(it.Question, it.CorrectAnswer)
	}
	c.println(t.String())
}

// ShowResults prints a topic's result history, fastest first.
func (c *Console) ShowResults(p results.Path, records []results.Record) {
	c.println(theme.Title.Render("Results: " + p.String()))
	t := newTable("#", "Date", "Minutes", "Correct", "Wrong", "Missed")
	for i, r := range records {
		var missed []string
		for _, w := range r.WrongItems {
			missed = append(missed, w.Question+" = "+w.CorrectAnswer)
		}
		t.Row(
			strconv.Itoa(i+1),
			r.Timestamp.Format(results.TimestampLayout),
			formatMinutes(r.TimeTakenMinutes),
			strconv.Itoa(r.CorrectAnswers),
			strconv.Itoa(r.WrongAnswers),
			strings.Join(missed, "\n"),
		)
	}
	c.println(t.String())
}

// ShowCounts prints the learning-count table as a tree.
func (c *Console) ShowCounts(counts results.Counts) {
	c.println(components.CountsTree(counts))
}

// ShowHistory prints journaled sessions.
func (c *Console) ShowHistory(sessions []store.SessionRecord) {
	if len(sessions) == 0 {
		c.Notice("No sessions yet.")
		return
	}
	t := newTable("Started", "Mode", "Topic", "Parts", "Correct", "Wrong", "Duration")
	for _, s := range sessions {
		correct, wrong, dur := "-", "-", "abandoned"
		if s.Ended {
			correct = strconv.Itoa(s.Correct)
			wrong = strconv.Itoa(s.Wrong)
			dur = s.Duration.Round(time.Second).String()
		}
		t.Row(
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Mode,
			s.Category+"/"+s.Lesson+"/"+s.Topic,
			strconv.Itoa(s.Parts),
			correct, wrong, dur,
		)
	}
	c.println(t.String())
}

// ShowCatalog prints categories, lessons and topics as a tree.
func (c *Console) ShowCatalog(cat content.Catalog) {
	root := tree.Root(theme.Title.Render("Content")).Enumerator(tree.RoundedEnumerator)
	for _, ce := range cat {
		cn := tree.Root(theme.Selected.Render(ce.Name))
		for _, l := range ce.Lessons {
			ln := tree.Root(l.Name)
			for _, t := range l.Topics {
				ln.Child(t)
			}
			cn.Child(ln)
		}
		root.Child(cn)
	}
	c.println(root.String())
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', 2, 64)
}
