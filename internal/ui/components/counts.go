package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/tree"

	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/ui/theme"
)

// CountsTree draws the learning-count table as a tree. Topics never
// completed are dimmed.
func CountsTree(counts results.Counts) string {
	root := tree.Root(theme.Title.Render("Learning overview")).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(theme.Border))
	for _, cat := range counts {
		catNode := tree.Root(theme.Selected.Render(cat.Name))
		for _, l := range cat.Lessons {
			lessonNode := tree.Root(theme.Body.Render(l.Name))
			for _, tc := range l.Topics {
				style := theme.Hint
				if tc.Count > 0 {
					style = theme.Correct
				}
				lessonNode.Child(tc.Name + " " + style.Render(fmt.Sprintf("(%d)", tc.Count)))
			}
			catNode.Child(lessonNode)
		}
		root.Child(catNode)
	}
	return root.String()
}
