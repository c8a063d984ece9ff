package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the unfinished quiz and countdown",
	Long: `Drop the persisted quiz progress. With --stats the cumulative statistics
are reset to their defaults as well.

The event log is kept; use a fresh --db to start over completely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		withStats, _ := cmd.Flags().GetBool("stats")

		if !yes {
			what := "your unfinished quiz"
			if withStats {
				what += " and all stats"
			}
			fmt.Printf("This clears %s. Continue? [y/N] ", what)
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if err := rt.controller(ctx, nil).Reset(ctx, withStats); err != nil {
			return err
		}
		if withStats {
			fmt.Println("Progress and stats cleared.")
		} else {
			fmt.Println("Progress cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	resetCmd.Flags().Bool("stats", false, "Also reset cumulative stats")
}
