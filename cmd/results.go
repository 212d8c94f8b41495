package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/quant-rishabh/learn-through-quiz/internal/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results [category] [lesson] [topic]",
	Short: "Show past results for a topic, fastest first",
	Args:  topicArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		c := newConsole(cmd, rt)
		topic, err := selectTopic(c, rt.content, args)
		if err != nil {
			return quietEOF(err)
		}

		p := results.Path{Category: topic.Category, Lesson: topic.Lesson, Topic: topic.Name}
		records, err := rt.results.Read(cmd.Context(), p)
		if errors.Is(err, results.ErrNotFound) {
			c.Notice("No results yet for " + p.String() + ".")
			return nil
		}
		if err != nil {
			return err
		}
		c.ShowResults(p, records)
		return nil
	},
}
