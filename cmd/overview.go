package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quant-rishabh/learn-through-quiz/internal/screens/overview"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show how many times each topic was completed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		counts, skipped, err := overview.Load(cmd.Context(), rt.content, rt.results)
		if err != nil {
			return err
		}
		for _, e := range skipped {
			rt.logger.Warn("lesson skipped", zap.Error(e))
		}
		newConsole(cmd, rt).ShowCounts(counts)
		return nil
	},
}
