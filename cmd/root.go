package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quant-rishabh/learn-through-quiz/internal/app"
	"github.com/quant-rishabh/learn-through-quiz/internal/screens/home"
)

var rootCmd = &cobra.Command{
	Use:   "quizmaster",
	Short: "Terminal self-quiz trainer",
	Long: `quizmaster quizzes you on lesson files, grades free-text answers with
fuzzy matching, drills the ones you miss and keeps a history of every run.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: ./config.json or the user config directory)")
	flags.String("env-file", ".env", "Dotenv file read before the environment")
	flags.String("db", "", "Path to the SQLite event journal (overrides the database setting)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp builds dependencies and launches the TUI. Logs go to a file so
// they do not tear the alternate screen.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd, logToFile)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Services: home.Services{
			Content: rt.content,
			Results: rt.results,
			Journal: rt.journal(),
			Session: rt.sessionOptions("test"),
		},
		Logger: rt.logger,
	})
}
