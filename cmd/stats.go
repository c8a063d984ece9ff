package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/boardprep/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		st := rt.controller(ctx, nil).State()
		s := st.Stats
		fmt.Printf("Quizzes completed: %d\n", s.TotalQuizzes)
		fmt.Printf("Total score:       %d XP\n", s.TotalScore)
		fmt.Printf("Streak:            %d\n", s.Streak)
		fmt.Printf("Level:             %d\n", s.Level)
		fmt.Printf("Last active:       %s\n", s.LastActive.Local().Format("2006-01-02 15:04"))

		if st.HasResumable() {
			sess := st.Session
			fmt.Printf("\nUnfinished quiz: %s, question %d of %d, %s left\n",
				sess.Topic(), sess.Cursor+1, len(sess.Questions), layout.FormatClock(st.Remaining))
		}
		return nil
	},
}
