package console

import (
	"fmt"
	"strings"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/session"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// quizListener prints engine events as they happen.
type quizListener struct {
	session.NopListener
	c *Console
}

func (l quizListener) OnNeedMedia(ref content.MediaRef) { l.c.showMedia(ref) }

func (l quizListener) OnVerdict(v session.Verdict) { l.c.printVerdict(v) }

func (l quizListener) OnSessionComplete(s session.Summary) { l.c.PrintSummary(s) }

// RunQuiz drives a session over topic until every part is resolved or input
// runs out. opts.Listener is replaced. The session is returned even on
// error so the caller can tell an abandoned run from a finished one.
func (c *Console) RunQuiz(topic *content.Topic, opts session.Options) (*session.Session, error) {
	opts.Listener = quizListener{c: c}
	s, err := session.New(topic, opts)
	if err != nil {
		return nil, err
	}

	c.println(theme.Title.Render(fmt.Sprintf("%s / %s / %s", topic.Category, topic.Lesson, topic.Name)))
	c.println(theme.Hint.Render(`Type "skip" to give up on a part.`))

	lastQuestion := 0
	for {
		p, ok := s.Next()
		if !ok {
			return s, nil
		}
		if p.Question != lastQuestion {
			lastQuestion = p.Question
			c.println("")
			c.println(theme.Subtitle.Render(fmt.Sprintf("Question %d/%d", p.Question, p.Questions)))
			if p.Context != "" {
				c.println(theme.Body.Render(p.Context))
			}
		}
		c.printf("%s ", promptLine(p))

		line, err := c.ReadLine()
		if err != nil {
			return s, err
		}
		if _, err := s.Submit(line); err != nil {
			return s, err
		}
	}
}

func promptLine(p session.Prompt) string {
	if p.Kind == session.PromptPractice {
		return theme.Hint.Render(fmt.Sprintf("Practice %d/%d, type %q:", p.Attempt, p.Attempts, p.Target))
	}
	label := theme.Selected.Render(p.Key)
	if p.Required > 1 {
		label += theme.Hint.Render(fmt.Sprintf(" (%d of %d answers left)", p.Remaining, p.Required))
	}
	return label + ":"
}

func (c *Console) printVerdict(v session.Verdict) {
	switch v.Kind {
	case session.VerdictCorrect:
		c.println(theme.Correct.Render("✓ Correct!"))
	case session.VerdictPartial:
		c.println(theme.Correct.Render(fmt.Sprintf("✓ %s. %d more required.", strings.Join(v.Matched, ", "), v.Remaining)))
	case session.VerdictWrong:
		c.println(theme.Incorrect.Render("✗ Wrong. ") + theme.Body.Render("Answer: "+v.Answer))
		if v.Closest != "" {
			c.println(theme.Hint.Render(closestLine(v)))
		}
		if v.Attempts > 0 {
			c.println(theme.Hint.Render(fmt.Sprintf("Now practice it %d times.", v.Attempts)))
		}
	case session.VerdictSkipped:
		c.println(theme.Incorrect.Render("Skipped. ") + theme.Body.Render("Answer: "+v.Answer))
	case session.VerdictPracticeMatch:
		c.println(theme.Correct.Render(fmt.Sprintf("✓ %d/%d", v.Attempt, v.Attempts)))
	case session.VerdictPracticeMiss:
		c.println(theme.Incorrect.Render(fmt.Sprintf("✗ %d/%d, expected %q", v.Attempt, v.Attempts, v.Answer)))
	}
	if v.Info != "" {
		c.println(theme.Hint.Render("Info: " + v.Info))
	}
}

func closestLine(v session.Verdict) string {
	return fmt.Sprintf("Closest: %q (%.0f%% match)", v.Closest, v.Score)
}
