package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/boardprep/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "boardprep",
	Short: "Quiz practice for BSEB Class 10",
	Long:  "BoardPrep: a terminal quiz app for Bihar Board Class 10 students with timed chapter quizzes and bundled or AI-generated questions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BOARDPREP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.config/boardprep/config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "Store backend: sqlite, redis or memory")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp opens the runtime, builds the controller and launches the TUI.
func runApp(cmd *cobra.Command, start *app.StartTopic) error {
	ctx := cmd.Context()
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(ctx, app.Options{
		Controller: rt.controller(ctx, rt.questionSource(ctx)),
		Events:     rt.Events,
		Start:      start,
	})
}
