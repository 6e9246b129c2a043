package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/streakd/streakd/internal/apiclient"
	"github.com/streakd/streakd/internal/config"
	"github.com/streakd/streakd/internal/remind"
	"github.com/streakd/streakd/internal/remind/resend"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Email a reminder for streaks expiring before midnight",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Remind.ResendAPIKey == "" {
			return fmt.Errorf("remind.resend_api_key is not set in config")
		}
		if cfg.Remind.NotifyEmail == "" {
			return fmt.Errorf("remind.notify_email is not set in config")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		q := apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
		n := &resend.Notifier{
			APIKey: cfg.Remind.ResendAPIKey,
			From:   cfg.Remind.FromEmail,
			To:     cfg.Remind.NotifyEmail,
		}
		return remind.Run(cmd.Context(), q, n, cfg.Remind.ThresholdHours, time.Now())
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
