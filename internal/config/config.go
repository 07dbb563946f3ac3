// Package config handles loading and saving user configuration for gini.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel          = "gemini-1.5-pro"
	DefaultTimeout        = 60 * time.Second
	DefaultCopyResetDelay = 1500 * time.Millisecond

	// FileName is the config file inside the config directory.
	FileName = "config.yaml"
	// LogFileName is the default log file inside the config directory.
	LogFileName = "gini.log"
	// HistoryFileName is the default submission history database.
	HistoryFileName = "history.db"
)

// APIKeyEnvVars are checked in order for the provider credential.
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "GINI_API_KEY"}

// Config holds all user configuration for gini.
type Config struct {
	Model          string        `mapstructure:"model"`
	Timeout        time.Duration `mapstructure:"timeout"`
	CopyResetDelay time.Duration `mapstructure:"copy_reset_delay"`
	LogFile        string        `mapstructure:"log_file"`
	PromptTemplate string        `mapstructure:"prompt_template"`
	OSC52          bool          `mapstructure:"osc52"`
	History        bool          `mapstructure:"history"`
	HistoryFile    string        `mapstructure:"history_file"`
	Verbose        bool          `mapstructure:"verbose"`

	// Dir is the directory the config was loaded from.
	Dir string `mapstructure:"-"`
	// APIKey only ever comes from the environment.
	APIKey string `mapstructure:"-"`
}

// fileConfig is the on-disk shape written by Save.
type fileConfig struct {
	Model          string `yaml:"model"`
	Timeout        string `yaml:"timeout"`
	CopyResetDelay string `yaml:"copy_reset_delay"`
	LogFile        string `yaml:"log_file,omitempty"`
	PromptTemplate string `yaml:"prompt_template,omitempty"`
	OSC52          bool   `yaml:"osc52"`
	History        bool   `yaml:"history"`
	HistoryFile    string `yaml:"history_file,omitempty"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper, dir string) {
	v.SetDefault("model", DefaultModel)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("copy_reset_delay", DefaultCopyResetDelay)
	v.SetDefault("log_file", filepath.Join(dir, LogFileName))
	v.SetDefault("prompt_template", "")
	v.SetDefault("osc52", true)
	v.SetDefault("history", false)
	v.SetDefault("history_file", filepath.Join(dir, HistoryFileName))
	v.SetDefault("verbose", false)
}

// Load reads dir/config.yaml (if present) and GINI_* environment variables.
// A missing config file is not an error.
func Load(v *viper.Viper, dir string) (*Config, error) {
	SetDefaults(v, dir)

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("GINI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Dir = dir
	cfg.APIKey = APIKeyFromEnv()
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.CopyResetDelay <= 0 {
		return fmt.Errorf("copy_reset_delay must be positive, got %s", c.CopyResetDelay)
	}
	return nil
}

// APIKeyFromEnv returns the first non-blank credential in APIKeyEnvVars.
func APIKeyFromEnv() string {
	for _, name := range APIKeyEnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return ""
}

// Default returns the built-in configuration for dir.
func Default(dir string) *Config {
	return &Config{
		Model:          DefaultModel,
		Timeout:        DefaultTimeout,
		CopyResetDelay: DefaultCopyResetDelay,
		LogFile:        filepath.Join(dir, LogFileName),
		OSC52:          true,
		HistoryFile:    filepath.Join(dir, HistoryFileName),
		Dir:            dir,
	}
}

// Save writes cfg to path as YAML. The API key is never written.
func Save(path string, cfg *Config) error {
	data := fileConfig{
		Model:          cfg.Model,
		Timeout:        cfg.Timeout.String(),
		CopyResetDelay: cfg.CopyResetDelay.String(),
		LogFile:        cfg.LogFile,
		PromptTemplate: cfg.PromptTemplate,
		OSC52:          cfg.OSC52,
		History:        cfg.History,
		HistoryFile:    cfg.HistoryFile,
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gini"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
