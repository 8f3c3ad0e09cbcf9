package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mentormem "github.com/GeminiLight/KiddleMentor-dev"
)

var (
	watchPattern string
	watchNoSync  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and print document events",
	Long: `Watch observes the memory tree and prints one line per document
change. Unless --no-sync is given, profile changes also keep the user
registry up to date while the watch is running.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sys := mentormem.New(workspace,
			mentormem.WithLogger(slog.Default()),
			mentormem.WithWatchPattern(watchPattern),
			mentormem.WithAutoSync(!watchNoSync),
		)

		events, err := sys.Watch(ctx)
		if err != nil {
			fmt.Printf("Error starting watcher: %v\n", err)
			os.Exit(1)
		}

		for e := range events {
			fmt.Println(e.String())
		}

		if err := sys.Stop(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error stopping watcher: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "**/*.json", "Glob pattern for watched documents, relative to the memory root")
	watchCmd.Flags().BoolVar(&watchNoSync, "no-sync", false, "Disable registry auto-sync while watching")
}
