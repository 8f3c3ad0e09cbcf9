package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	mentormem "github.com/GeminiLight/KiddleMentor-dev"
)

var usersJSON bool

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the user registry",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered users",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reg := mentormem.NewRegistry(workspace, mentormem.WithLogger(slog.Default()))
		users := reg.ListUsers()

		if usersJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(users); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, u := range users {
			line := fmt.Sprintf("%s - %s", u.LearnerID, u.Name)
			if u.Email != "" {
				line += fmt.Sprintf(" <%s>", u.Email)
			}
			fmt.Println(line)
		}
	},
}

var usersSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the registry from the documents on disk",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reg := mentormem.NewRegistry(workspace, mentormem.WithLogger(slog.Default()))
		count, err := reg.SyncFromDisk()
		if err != nil {
			fmt.Printf("Error syncing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Synced %d users\n", count)
	},
}

var usersRmCmd = &cobra.Command{
	Use:   "rm [learner-id]",
	Short: "Remove a user and all their memory data",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		learnerID := args[0]
		reg := mentormem.NewRegistry(workspace, mentormem.WithLogger(slog.Default()))
		found, err := reg.DeleteUser(learnerID)
		if err != nil {
			fmt.Printf("Error removing user: %v\n", err)
			os.Exit(1)
		}
		if !found {
			fmt.Printf("User not found: %s\n", learnerID)
			os.Exit(1)
		}
		fmt.Printf("User removed: %s\n", learnerID)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersSyncCmd)
	usersCmd.AddCommand(usersRmCmd)
	usersListCmd.Flags().BoolVar(&usersJSON, "json", false, "Output in JSON format")
}
