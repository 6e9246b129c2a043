package cmd

import (
	"github.com/spf13/cobra"

	"github.com/streakd/streakd/internal/apiclient"
	"github.com/streakd/streakd/internal/config"
)

var (
	addDescription string
	addFrequency   string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return add(cmd, args[0])
	},
}

func add(cmd *cobra.Command, title string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
	h, err := client.CreateHabit(cmd.Context(), title, addDescription, addFrequency)
	if err != nil {
		return err
	}

	cmd.Printf("Created habit %q (%s)\n", h.Title, h.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "optional description")
	addCmd.Flags().StringVarP(&addFrequency, "frequency", "f", "", "daily or weekly (default daily)")
}
