package cmd

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var testCmd = &cobra.Command{
	Use:   "test [category] [lesson] [topic]",
	Short: "Take a quiz on a topic in the terminal",
	Long: `Take a quiz on a topic. Missing arguments are asked for with numbered
menus. A wrong answer is followed by practice rounds; type "skip" to give up
on a part. Results are saved when the last part is answered.`,
	Args: topicArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		seed, _ := cmd.Flags().GetUint64("seed")
		c := newConsole(cmd, rt)
		topic, err := selectTopic(c, rt.content, args)
		if err != nil {
			return quietEOF(err)
		}

		for round := uint64(0); ; round++ {
			opts := rt.sessionOptions("test")
			if seed != 0 {
				opts.Rand = rand.New(rand.NewPCG(seed, round))
			}

			s, err := c.RunQuiz(topic, opts)
			if err != nil {
				return quietEOF(err)
			}
			if err := s.Finalize(cmd.Context(), rt.results); err != nil {
				c.Error(err)
				rt.logger.Error("result not saved", zap.Error(err))
			} else {
				c.Notice(fmt.Sprintf("Saved to %s", rt.results.ResultPath(s.Path())))
			}

			if err := c.Pause("Press enter to start again, Ctrl+D to stop."); err != nil {
				return quietEOF(err)
			}
		}
	},
}

func init() {
	testCmd.Flags().Uint64("seed", 0, "Seed for the question order (0 means random)")
}

// quietEOF treats running out of input as a normal exit.
func quietEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
