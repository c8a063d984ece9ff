package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/boardprep/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz starts, finishes and discards",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetDuration("since")

		rt, events, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		list, err := events.QueryQuizEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No quizzes recorded yet.")
			return nil
		}

		t := newTable("%-19v  %-8v  %-40v  %7v  %7v  %6v", 96,
			"Timestamp", "Action", "Topic", "Score", "Correct", "Time")

		for _, e := range list {
			topic := e.Chapter
			if topic == "" {
				topic = e.Subject + " (mix)"
			}
			action := string(e.Action)
			if e.Forced {
				action += "*"
			}
			score, correct, elapsed := "", "", ""
			if e.Action != store.QuizStarted {
				score = fmt.Sprintf("%d", e.Score)
				correct = fmt.Sprintf("%d/%d", e.Correct, e.Total)
				elapsed = fmt.Sprintf("%d:%02d", e.DurationSecs/60, e.DurationSecs%60)
			}
			t.row(stamp(e.Timestamp), action, truncate(topic, 40), score, correct, elapsed)
		}
		fmt.Println("\n* finished when the countdown ran out")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().Duration("since", 0, "Only show events newer than this, e.g. 168h")
}
