// Package config loads pane-pilot configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (PANE_PILOT_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .pane-pilot.yaml in current directory
//  2. ~/.config/pane-pilot/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all pane-pilot configuration.
type Config struct {
	// Mux forces a multiplexer instead of auto-detection.
	Mux string `yaml:"mux"`

	// DelayMs is the inter-action delay in milliseconds. 0 disables
	// inter-action pausing; Sleep actions and explicit repeat delays are
	// unaffected.
	DelayMs int `yaml:"delay_ms"`

	// LLM scripter settings
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int64  `yaml:"max_tokens"`

	// SessionDirs are extra directories searched for session files, in
	// addition to the built-in search path.
	SessionDirs []string `yaml:"session_dirs"`

	// Theme selects the REPL color theme: "dark" or "light".
	Theme string `yaml:"theme"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		DelayMs:   30,
		Provider:  "anthropic",
		Model:     "claude-sonnet-4-5",
		MaxTokens: 4096,
		Theme:     "dark",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if cfg.DelayMs < 0 {
		return nil, fmt.Errorf("invalid delay_ms %d: must be >= 0", cfg.DelayMs)
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".pane-pilot.yaml"); err == nil {
		return ".pane-pilot.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "pane-pilot", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Mux != "" {
		cfg.Mux = file.Mux
	}
	if file.DelayMs > 0 {
		cfg.DelayMs = file.DelayMs
	}
	if file.Provider != "" {
		cfg.Provider = file.Provider
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.APIKey != "" {
		cfg.APIKey = file.APIKey
	}
	if file.MaxTokens > 0 {
		cfg.MaxTokens = file.MaxTokens
	}
	if len(file.SessionDirs) > 0 {
		cfg.SessionDirs = file.SessionDirs
	}
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("PANE_PILOT_MUX"); v != "" {
		cfg.Mux = v
	}
	if v := os.Getenv("PANE_PILOT_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.DelayMs = ms
		}
	}
	if v := os.Getenv("PANE_PILOT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("PANE_PILOT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PANE_PILOT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PANE_PILOT_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PANE_PILOT_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}

	// API key fallbacks
	if cfg.APIKey == "" {
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.APIKey = v
		}
	}
	if cfg.APIKey == "" {
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.APIKey = v
		}
	}
}
