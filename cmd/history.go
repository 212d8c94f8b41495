package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/quant-rishabh/learn-through-quiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		repo := rt.journal()
		if repo == nil {
			return errors.New("event journal unavailable")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := repo.Sessions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		newConsole(cmd, rt).ShowHistory(sessions)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to list (0 for all)")
}
