package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quant-rishabh/learn-through-quiz/internal/content"
)

var listCmd = &cobra.Command{
	Use:   "list [category [lesson]]",
	Short: "List categories, lessons and topics",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		c := newConsole(cmd, rt)
		cat, skipped, err := rt.content.Catalog()
		if err != nil {
			return err
		}
		for _, e := range skipped {
			c.Error(e)
		}
		c.ShowCatalog(filterCatalog(cat, args))
		return nil
	},
}

// filterCatalog keeps only the category and lesson named in args.
func filterCatalog(cat content.Catalog, args []string) content.Catalog {
	if len(args) == 0 {
		return cat
	}
	var out content.Catalog
	for _, ce := range cat {
		if ce.Name != args[0] {
			continue
		}
		if len(args) > 1 {
			var lessons []content.LessonEntry
			for _, l := range ce.Lessons {
				if l.Name == content.LessonName(args[1]) {
					lessons = append(lessons, l)
				}
			}
			ce.Lessons = lessons
		}
		out = append(out, ce)
	}
	return out
}
