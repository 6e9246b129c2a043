package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
	APIBaseURL string `yaml:"api_base_url"`
	AuthToken  string `yaml:"auth_token"`
	LogJSON    bool   `yaml:"log_json"`

	AuthEnabled  bool         `yaml:"auth_enabled"`
	OIDCProvider OIDCProvider `yaml:"oidc_provider"`
	Remind       RemindConfig `yaml:"remind"`
}

type OIDCProvider struct {
	Name         string   `yaml:"name"`
	IssuerURL    string   `yaml:"issuer_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

type RemindConfig struct {
	ResendAPIKey   string `yaml:"resend_api_key"`
	NotifyEmail    string `yaml:"notify_email"`
	FromEmail      string `yaml:"from_email"`
	ThresholdHours int    `yaml:"threshold_hours"`
}

// Load reads the yaml config named by STREAKD_CONFIG, falling back to
// ./config.yaml, and fills defaults for anything unset.
func Load() (*Config, error) {
	path := os.Getenv("STREAKD_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "streakd.db"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	if cfg.Remind.ThresholdHours == 0 {
		cfg.Remind.ThresholdHours = 4
	}

	return &cfg, nil
}
