package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// ProgressFigure selects the figure printed after the bar.
type ProgressFigure int

const (
	FigureNone    ProgressFigure = iota
	FigureCount                  // "3/10"
	FigurePercent                // "30%"
)

// ProgressBar shows done out of total steps, e.g. questions finished or
// parts answered correctly.
type ProgressBar struct {
	Label  string
	Done   int
	Total  int
	Width  int
	Figure ProgressFigure
}

// NewProgressBar returns a bar with no trailing figure.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// WithFigure returns a copy of p that prints f after the bar.
func (p ProgressBar) WithFigure(f ProgressFigure) ProgressBar {
	p.Figure = f
	return p
}

// Fraction is Done/Total clamped to [0, 1]. An empty total reads as 0.
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

func (p ProgressBar) figure() string {
	switch p.Figure {
	case FigureCount:
		return fmt.Sprintf("  %d/%d", min(max(p.Done, 0), max(p.Total, 0)), max(p.Total, 0))
	case FigurePercent:
		return fmt.Sprintf("  %.0f%%", p.Fraction()*100)
	}
	return ""
}

// View renders the bar, never narrower than four cells.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	fig := p.figure()
	barWidth := max(p.Width-lipgloss.Width(b.String())-lipgloss.Width(fig), 4)
	filled := int(float64(barWidth) * p.Fraction())

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	if fig != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fig))
	}
	return b.String()
}
