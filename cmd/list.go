package cmd

import (
	"github.com/spf13/cobra"

	"github.com/streakd/streakd/internal/apiclient"
	"github.com/streakd/streakd/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with their streaks",
	Long:  `The "list" command shows your habits, current streaks, and whether each is done today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return list(cmd)
	},
}

func list(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
	habits, err := client.ListHabits(cmd.Context())
	if err != nil {
		return err
	}

	for _, h := range habits {
		done := " "
		if h.TodayCompleted {
			done = "x"
		}
		cmd.Printf("[%s] %-30s streak %d (best %d)  %s\n", done, h.Title, h.Streak, h.BestStreak, h.ID)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
