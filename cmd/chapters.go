package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/boardprep/internal/catalog"
	"github.com/abhisek/boardprep/internal/quiz"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the syllabus chapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjects := catalog.Subjects()
		if subjectVal, _ := cmd.Flags().GetString("subject"); subjectVal != "" {
			subject, err := quiz.ParseSubject(subjectVal)
			if err != nil {
				return err
			}
			subjects = []quiz.Subject{subject}
		}

		for _, subject := range subjects {
			fmt.Println(subject)
			for _, ch := range catalog.Chapters(subject) {
				bundled := ""
				if _, ok := catalog.SampleBatch(ch.Name); ok {
					bundled = "  [offline]"
				}
				fmt.Printf("  %-6s %-45s %3d questions%s\n", ch.ID, ch.Name, ch.TotalQuestions, bundled)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	chaptersCmd.Flags().String("subject", "", "Only list chapters of this subject")
}
