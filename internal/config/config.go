// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by MergeWithDefaults when neither the file nor flags set a value
const (
	DefaultPort        = 8080
	DefaultOut         = "resume.json"
	DefaultLogLevel    = "info"
	DefaultConcurrency = 8
	DefaultGamesBase   = "https://redtiger.com/games"
)

var logLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// Config represents settings that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from CLI flags.
type Config struct {
	// Content is the CV content file (JSON or YAML); Out is the export destination
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Out     string `json:"out,omitempty" yaml:"out,omitempty"`

	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`

	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty" yaml:"log_file,omitempty"`

	ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`

	// Concurrency bounds parallel link checks; GamesBaseURL prefixes collection game slugs
	Concurrency  int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	GamesBaseURL string `json:"games_base_url,omitempty" yaml:"games_base_url,omitempty"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON or YAML file (chosen by extension).
// ${VAR} references in the file are expanded from the environment.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are left to CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.LogLevel != "" {
		if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
			return fmt.Errorf("config error: unknown log_level %q", c.LogLevel)
		}
	}

	if c.Content != "" {
		if _, err := os.Stat(c.Content); os.IsNotExist(err) {
			return fmt.Errorf("config error: content file not found: %s", c.Content)
		}
	}

	return nil
}

// ApplyEnv fills empty fields from DATABASE_URL, LOG_LEVEL, LOG_FILE and CHROME_PATH
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if c.LogFile == "" {
		c.LogFile = os.Getenv("LOG_FILE")
	}
	if c.ChromePath == "" {
		c.ChromePath = os.Getenv("CHROME_PATH")
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Content == "" {
		result.Content = defaults.Content
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.GamesBaseURL == "" {
		result.GamesBaseURL = defaults.GamesBaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	if result.Out == "" {
		result.Out = DefaultOut
	}
	if result.LogLevel == "" {
		result.LogLevel = DefaultLogLevel
	}
	if result.GamesBaseURL == "" {
		result.GamesBaseURL = DefaultGamesBase
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.Concurrency == 0 {
		result.Concurrency = DefaultConcurrency
	}

	// Bools cannot distinguish unset from false; CLI flags always win
	return result
}
