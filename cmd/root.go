package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "streakd",
	Short: "Track daily habits and keep streaks alive",
	Long: `
	Streakd is a habit-tracking server and CLI. It records per-day completion
	logs for your habits, maintains streak and best-streak counters, and can
	remind you before a streak expires at midnight.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
