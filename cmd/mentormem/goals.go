package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	mentormem "github.com/GeminiLight/KiddleMentor-dev"
)

var goalsJSON bool

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Inspect and manage a learner's goal ledger",
}

var goalsListCmd = &cobra.Command{
	Use:   "list [learner-id]",
	Short: "List all goals of a learner",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := mentormem.NewRepository(workspace, mentormem.WithLogger(slog.Default()))
		ledger := repo.LearningGoals(args[0])
		if ledger == nil {
			fmt.Println("No goals recorded")
			return
		}

		if goalsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(ledger); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, g := range ledger.Goals {
			marker := " "
			if g.GoalID == ledger.ActiveGoalID {
				marker = "*"
			}
			fmt.Printf("%s %s [%s] %s\n", marker, g.GoalID, g.Status, g.LearningGoal)
		}
	},
}

var goalsAddCmd = &cobra.Command{
	Use:   "add [learner-id] [goal]",
	Short: "Add a new goal and make it active",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo := mentormem.NewRepository(workspace, mentormem.WithLogger(slog.Default()))
		goalID, err := repo.AddGoal(args[0], args[1], nil)
		if err != nil {
			fmt.Printf("Error adding goal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Goal added: %s\n", goalID)
	},
}

var goalsActivateCmd = &cobra.Command{
	Use:   "activate [learner-id] [goal-id]",
	Short: "Make an existing goal the active one",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo := mentormem.NewRepository(workspace, mentormem.WithLogger(slog.Default()))
		if err := repo.ActivateGoal(args[0], args[1]); err != nil {
			fmt.Printf("Error activating goal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Goal activated: %s\n", args[1])
	},
}

var goalsArchiveCmd = &cobra.Command{
	Use:   "archive [learner-id] [goal-id]",
	Short: "Archive a goal",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo := mentormem.NewRepository(workspace, mentormem.WithLogger(slog.Default()))
		if err := repo.ArchiveGoal(args[0], args[1]); err != nil {
			fmt.Printf("Error archiving goal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Goal archived: %s\n", args[1])
	},
}

func init() {
	rootCmd.AddCommand(goalsCmd)
	goalsCmd.AddCommand(goalsListCmd)
	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsActivateCmd)
	goalsCmd.AddCommand(goalsArchiveCmd)
	goalsListCmd.Flags().BoolVar(&goalsJSON, "json", false, "Output in JSON format")
}
