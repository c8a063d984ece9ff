package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/boardprep/internal/app"
	"github.com/abhisek/boardprep/internal/catalog"
	"github.com/abhisek/boardprep/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz straight away",
	Long: `Launch the TUI directly into a quiz.

With --chapter, the chapter is looked up by id or name and its subject is
implied. With only --subject, a mixed quiz across the subject starts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := resolveTopic(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, start)
	},
}

func init() {
	playCmd.Flags().String("subject", "", "Subject for a mixed quiz, e.g. Mathematics")
	playCmd.Flags().String("chapter", "", "Chapter id or name, e.g. m-c1")
}

func resolveTopic(cmd *cobra.Command) (*app.StartTopic, error) {
	subjectVal, _ := cmd.Flags().GetString("subject")
	chapterVal, _ := cmd.Flags().GetString("chapter")

	if chapterVal != "" {
		subject, ch, ok := catalog.FindChapter(chapterVal)
		if !ok {
			return nil, fmt.Errorf("no chapter found for %q (see `boardprep chapters`)", chapterVal)
		}
		if subjectVal != "" {
			want, err := quiz.ParseSubject(subjectVal)
			if err != nil {
				return nil, err
			}
			if want != subject {
				return nil, fmt.Errorf("chapter %q belongs to %s, not %s", ch.Name, subject, want)
			}
		}
		return &app.StartTopic{Subject: subject, Chapter: ch.Name}, nil
	}

	if subjectVal == "" {
		return nil, fmt.Errorf("one of --subject or --chapter is required")
	}
	subject, err := quiz.ParseSubject(subjectVal)
	if err != nil {
		return nil, err
	}
	return &app.StartTopic{Subject: subject}, nil
}
