// Package main provides the cvportfolio CLI: JSON Resume export, validation, rendering,
// link maintenance and the content HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/igegov/cv-portfolio/internal/config"
	"github.com/igegov/cv-portfolio/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
	verbose    bool

	// settings is resolved from the config file, the environment and global flags
	// before any subcommand runs.
	settings config.Config
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cvportfolio",
	Short: "Portfolio content tooling",
	Long: "cvportfolio exports portfolio content as a JSON Resume document, validates and renders it, " +
		"maintains collection links and serves the content over HTTP.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed summaries")
}

// setup resolves settings and builds the logger
func setup(_ *cobra.Command, _ []string) error {
	resolved, err := resolveSettings(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		resolved.LogLevel = logLevel
	}
	resolved.Verbose = resolved.Verbose || verbose
	settings = resolved

	l, err := logging.New(settings.LogLevel, settings.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return nil
}

// resolveSettings loads the optional config file, fills gaps from the environment and
// applies defaults.
func resolveSettings(path string) (config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg.MergeWithDefaults(config.Config{}), nil
}

// firstNonEmpty returns the first non-empty value, used to let flags override settings
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
