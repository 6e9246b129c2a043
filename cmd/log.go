package cmd

import (
	"github.com/spf13/cobra"

	"github.com/streakd/streakd/internal/apiclient"
	"github.com/streakd/streakd/internal/config"
)

var (
	logNotDone bool
	logNotes   string
)

var logCmd = &cobra.Command{
	Use:   "log <habit-id>",
	Short: "Log today's completion for a habit",
	Long: `The "log" command records whether a habit was completed today and updates
its streak. Logging the same day twice updates the existing record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return logHabit(cmd, args[0])
	},
}

func logHabit(cmd *cobra.Command, habitID string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
	l, err := client.LogCompletion(cmd.Context(), habitID, !logNotDone, logNotes)
	if err != nil {
		return err
	}

	state := "done"
	if !l.Completed {
		state = "not done"
	}
	cmd.Printf("Logged %s as %s for %s\n", habitID, state, l.Date.Format("2006-01-02"))
	return nil
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().BoolVar(&logNotDone, "not-done", false, "mark today as not completed")
	logCmd.Flags().StringVarP(&logNotes, "notes", "n", "", "optional notes for today's log")
}
