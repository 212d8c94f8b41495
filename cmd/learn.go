package cmd

import (
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn [category] [lesson] [topic]",
	Short: "Print every question of a topic with its answers",
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
		c.ShowTopic(topic)
		return nil
	},
}
