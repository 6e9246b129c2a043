package cmd

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/streakd/streakd/internal/config"
	"github.com/streakd/streakd/internal/logger"
	"github.com/streakd/streakd/internal/server"
	"github.com/streakd/streakd/internal/storage/bolt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.LogJSON {
		logger.InitJSON(slog.LevelInfo)
	} else {
		logger.Init(slog.LevelInfo)
	}

	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := server.New(cfg, store)
	if err != nil {
		return err
	}

	logger.Info("Starting server", "addr", cfg.ListenAddr, "db", cfg.DBPath, "auth_enabled", cfg.AuthEnabled)
	return http.ListenAndServe(cfg.ListenAddr, s.Router())
}
