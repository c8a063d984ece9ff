package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/boardprep/internal/llm"
	"github.com/abhisek/boardprep/internal/questiongen"
	"github.com/abhisek/boardprep/internal/quiz"
	"github.com/abhisek/boardprep/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a topic (no database)",
	Long: `Generate one batch for a chapter or subject and answer it in the terminal.

This is a stateless developer tool: no database, no stats, no events.
Useful for evaluating question quality across providers.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("subject", "", "Subject for a mixed batch")
	previewCmd.Flags().String("chapter", "", "Chapter id or name")
	previewCmd.Flags().Int("count", quiz.BatchSize, "Number of questions to generate")
	previewCmd.Flags().Bool("print", false, "Print the batch with answers instead of quizzing")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	printOnly, _ := cmd.Flags().GetBool("print")

	topic, err := resolveTopic(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.LLMConfigured() {
		return fmt.Errorf("no LLM API key configured")
	}

	// No EventRepo and no logger: nothing is recorded.
	ctx := llm.WithPurpose(cmd.Context(), llm.PurposePreview)
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, questiongen.DefaultConfig())

	label := string(topic.Subject)
	if topic.Chapter != "" {
		label = topic.Chapter
	}
	fmt.Printf("Topic: %s (%s, %s)\n", label, cfg.LLM.Provider, quiz.RemoteDifficulty)
	fmt.Printf("Generating %d questions...\n\n", count)

	questions, err := gen.Generate(ctx, questiongen.GenerateInput{
		Subject:    topic.Subject,
		Difficulty: quiz.RemoteDifficulty,
		Chapter:    topic.Chapter,
		Count:      count,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct, score int

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %s) %s\n", components.OptionLabels[j], opt)
		}

		if printOnly {
			fmt.Printf("Answer: %s\n", components.OptionLabels[q.CorrectIndex])
			fmt.Printf("Explanation: %s\n\n", q.Explanation)
			continue
		}

		fmt.Print("\nYour answer (A-D): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		choice, ok := parseChoice(scanner.Text())
		if !ok {
			fmt.Print("(skipped)\n\n")
			continue
		}

		if q.IsCorrect(choice) {
			correct++
			score += quiz.PointsPerCorrect
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", components.OptionLabels[q.CorrectIndex])
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	if !printOnly {
		fmt.Printf("── Summary: %d/%d correct, %d points ──\n", correct, len(questions), score)
	}
	return nil
}

// parseChoice maps A-D or 1-4 to an option index.
func parseChoice(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, false
	}
	if i := strings.Index("ABCD", s); i >= 0 {
		return i, true
	}
	if i := strings.Index("1234", s); i >= 0 {
		return i, true
	}
	return 0, false
}
