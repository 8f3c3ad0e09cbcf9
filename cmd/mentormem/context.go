package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	mentormem "github.com/GeminiLight/KiddleMentor-dev"
)

var contextJSON bool

var contextCmd = &cobra.Command{
	Use:   "context [learner-id]",
	Short: "Print the aggregate context of a learner",
	Long: `Context assembles everything known about one learner into a single
view: profile, goals, skill gaps, mastery, learning path and recent history.
Outputs the formatted prompt text by default, or the raw bundle with --json.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		learnerID := args[0]
		repo := mentormem.NewRepository(workspace, mentormem.WithLogger(slog.Default()))

		if contextJSON {
			bundle := repo.LearnerContext(learnerID)
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(bundle); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		summary := repo.ContextSummary(learnerID)
		if summary == "" {
			fmt.Println("No context recorded")
			return
		}
		fmt.Println(summary)
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().BoolVar(&contextJSON, "json", false, "Output the raw context bundle as JSON")
}
