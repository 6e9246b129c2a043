package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

func TestLoad_MissingConfig(t *testing.T) {
	t.Setenv("STREAKD_CONFIG", "nonexistent.yaml")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	t.Setenv("STREAKD_CONFIG", configFile)

	c := Config{}
	d, err := yaml.Marshal(&c)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configFile, d, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal("error opening config:", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.DBPath != "streakd.db" {
		t.Errorf("db_path = %q, want streakd.db", cfg.DBPath)
	}
	if cfg.Remind.ThresholdHours != 4 {
		t.Errorf("threshold_hours = %d, want 4", cfg.Remind.ThresholdHours)
	}
}

func TestLoad_CustomConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	t.Setenv("STREAKD_CONFIG", configFile)

	c := Config{
		ListenAddr:  ":9999",
		AuthEnabled: true,
		Remind: RemindConfig{
			NotifyEmail:    "me@example.com",
			ThresholdHours: 6,
		},
	}
	d, err := yaml.Marshal(&c)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configFile, d, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal("error opening config:", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("listen_addr = %q, want :9999", cfg.ListenAddr)
	}
	if !cfg.AuthEnabled {
		t.Error("auth_enabled = false, want true")
	}
	if cfg.Remind.NotifyEmail != "me@example.com" {
		t.Errorf("notify_email = %q, want me@example.com", cfg.Remind.NotifyEmail)
	}
	if cfg.Remind.ThresholdHours != 6 {
		t.Errorf("threshold_hours = %d, want 6", cfg.Remind.ThresholdHours)
	}
}
