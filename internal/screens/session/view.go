package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	sess "github.com/quant-rishabh/learn-through-quiz/internal/session"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/components"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/layout"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// renderQuestionView renders the active prompt.
func (s *SessionScreen) renderQuestionView(width int) string {
	p, ok := s.session.Next()
	if !ok {
		return renderSaving(width)
	}

	var b strings.Builder

	bar := components.NewProgressBar(
		fmt.Sprintf("  Question %d", p.Question),
		p.Question-1,
		p.Questions,
		min(width-4, 60),
	).WithFigure(components.FigureCount)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if p.Context != "" {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), p.Context))
		b.WriteString("\n\n")
	}
	if p.Image != nil {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle(), s.mediaLine(*p.Image)))
		b.WriteString("\n\n")
	}

	// The last verdict stays visible while the same part is still open.
	if s.last != nil && !s.last.PartDone && s.last.Kind != sess.VerdictWrong {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle(), verdictLine(*s.last)))
		b.WriteString("\n\n")
	}

	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if p.Kind == sess.PromptPractice {
		b.WriteString(layout.Centered(width, questionStyle, p.Key))
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, theme.Hint,
			fmt.Sprintf("Practice %d/%d, type %q", p.Attempt, p.Attempts, p.Target)))
	} else {
		b.WriteString(layout.Centered(width, questionStyle, p.Key))
		if p.Required > 1 {
			b.WriteString("\n")
			b.WriteString(layout.Centered(width, theme.Hint,
				fmt.Sprintf("%d of %d answers left", p.Remaining, p.Required)))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.prompt.View()))

	return b.String()
}

// renderFeedback renders the overlay shown after a miss or when an image
// is due.
func (s *SessionScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if v := s.last; v != nil {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle(), verdictLine(*v)))
		b.WriteString("\n")
		switch v.Kind {
		case sess.VerdictWrong, sess.VerdictSkipped:
			b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
				fmt.Sprintf("%s = %s", v.Key, v.Answer)))
			b.WriteString("\n")
			if v.Closest != "" {
				b.WriteString(layout.Centered(width, theme.Hint,
					fmt.Sprintf("Closest: %q (%.0f%% match)", v.Closest, v.Score)))
				b.WriteString("\n")
			}
			if v.Attempts > 0 {
				b.WriteString(layout.Centered(width, theme.Hint,
					fmt.Sprintf("Now practice it %d times.", v.Attempts)))
				b.WriteString("\n")
			}
		}
		if v.Info != "" {
			b.WriteString("\n")
			info := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Accent).Render("Info: " + v.Info)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, info))
			b.WriteString("\n")
		}
	}

	for _, ref := range s.media {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, lipgloss.NewStyle(), s.mediaLine(ref)))
	}

	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Press any key to continue..."))
	return b.String()
}

func (s *SessionScreen) mediaLine(ref content.MediaRef) string {
	if s.images == nil {
		return theme.Media.Render("[image] " + ref.Name)
	}
	p, ok := s.images.ImagePath(ref)
	if !ok {
		return theme.Incorrect.Render("[image missing] " + p)
	}
	return theme.Media.Render("[image] " + p)
}

func verdictLine(v sess.Verdict) string {
	switch v.Kind {
	case sess.VerdictCorrect:
		return theme.Correct.Render("Correct!")
	case sess.VerdictPartial:
		return theme.Correct.Render(fmt.Sprintf("%s. %d more required.", strings.Join(v.Matched, ", "), v.Remaining))
	case sess.VerdictWrong:
		return theme.Incorrect.Render("Not quite")
	case sess.VerdictSkipped:
		return theme.Incorrect.Render("Skipped")
	case sess.VerdictPracticeMatch:
		return theme.Correct.Render(fmt.Sprintf("✓ %d/%d", v.Attempt, v.Attempts))
	case sess.VerdictPracticeMiss:
		return theme.Incorrect.Render(fmt.Sprintf("✗ %d/%d, expected %q", v.Attempt, v.Attempts, v.Answer))
	}
	return ""
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Abandon this quiz?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Nothing is saved for an unfinished quiz."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error), "[Y] Yes, abandon"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

func renderSaving(width int) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n\n  Saving your result...")
}

func renderSaveError(width int, errMsg string) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Could not save: %s\n\n  Press R to retry or Esc to discard.", errMsg))
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
