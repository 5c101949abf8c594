package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TimurManjosov/ffc-commons-go/internal/config"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI profile file
type Config struct {
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile holds the backend settings of one environment
type Profile struct {
	BaseURL   string `yaml:"base_url"`
	EnvSecret string `yaml:"env_secret"`
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ffc", "config.yaml"), nil
}

// LoadConfig loads the configuration from file
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{
				DefaultProfile: "dev",
				Profiles:       make(map[string]Profile),
			}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to file
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveConfig builds the transport configuration for a command.
// Priority: command flags > FFC_* environment variables (or .env) > profile
// file > config defaults. Settings other than base URL and secret always
// come from config.Load. A profile named explicitly must exist; the default
// profile is skipped when the file does not define it.
// Returns the validated config and the effective profile name ("" when no
// profile was used).
func ResolveConfig(profileName, baseURLFlag, secretFlag string) (*config.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}

	baseURL := baseURLFlag
	if baseURL == "" && cfg.IsExplicit(config.KeyBaseURL) {
		baseURL = cfg.BaseURL
	}
	secret := secretFlag
	if secret == "" && cfg.IsExplicit(config.KeyEnvSecret) {
		secret = cfg.EnvSecret
	}

	effective := ""
	if baseURL == "" || secret == "" {
		file, err := LoadConfig()
		if err != nil {
			return nil, "", err
		}
		name := profileName
		if name == "" {
			name = file.DefaultProfile
		}
		profile, ok := file.Profiles[name]
		switch {
		case ok:
			baseURL = firstNonEmpty(baseURL, profile.BaseURL)
			secret = firstNonEmpty(secret, profile.EnvSecret)
			effective = name
		case profileName != "":
			return nil, "", fmt.Errorf("profile '%s' not found in config", profileName)
		}
	}

	cfg.BaseURL = firstNonEmpty(baseURL, cfg.BaseURL)
	cfg.EnvSecret = secret
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, effective, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// InitConfig creates a default config file
func InitConfig() error {
	cfg := &Config{
		DefaultProfile: "dev",
		Profiles: map[string]Profile{
			"dev": {
				BaseURL:   "http://localhost:8080",
				EnvSecret: "dev-secret",
			},
			"prod": {
				BaseURL:   "https://ffc.example.com",
				EnvSecret: "prod-secret",
			},
		},
	}

	return SaveConfig(cfg)
}
