package main

import (
	"context"
	"fmt"

	"github.com/igegov/cv-portfolio/internal/config"
	"github.com/igegov/cv-portfolio/internal/content"
	"github.com/igegov/cv-portfolio/internal/db"
	"github.com/igegov/cv-portfolio/internal/server"
	"github.com/igegov/cv-portfolio/internal/server/ratelimit"
	"github.com/igegov/cv-portfolio/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the content HTTP API",
	Long: "Serves the content, the JSON Resume export and schema validation over HTTP. " +
		"Editing requires EDITOR_PASSWORD_HASH and JWT_SECRET; export history requires DATABASE_URL.",
	RunE: runServe,
}

var (
	servePort    int
	serveContent string
	serveRestore bool
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (default 8080)")
	serveCmd.Flags().StringVarP(&serveContent, "content", "c", "", "Path to the initial content file (JSON or YAML)")
	serveCmd.Flags().BoolVar(&serveRestore, "restore", false, "Start from the latest stored snapshot when one exists")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	port := settings.Port
	if servePort != 0 {
		port = servePort
	}

	cv, err := initialContent(firstNonEmpty(serveContent, settings.Content))
	if err != nil {
		return err
	}

	editor, err := config.NewEditorConfig()
	if err != nil {
		return fmt.Errorf("invalid editor configuration: %w", err)
	}
	if !editor.Enabled() {
		logger.Info("editing disabled: EDITOR_PASSWORD_HASH or JWT_SECRET not set")
	}

	cfg := server.Config{
		Port:      port,
		Editor:    editor,
		Logger:    logger,
		RateLimit: ratelimit.LoadConfig(),
	}

	if settings.DatabaseURL != "" {
		database, err := db.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		if serveRestore {
			cv = restoreLatest(ctx, database, cv)
		}
		cfg.Exports = database
	} else {
		logger.Info("export history disabled: DATABASE_URL not set")
	}

	if cv == nil {
		return fmt.Errorf("no content: pass --content or --restore with a stored snapshot")
	}
	cfg.Store = content.NewStore(cv)

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}

// initialContent loads the content file when a path is given
func initialContent(path string) (*types.CVData, error) {
	if path == "" {
		return nil, nil
	}
	cv, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return cv, nil
}

// restoreLatest prefers the newest stored snapshot over fallback
func restoreLatest(ctx context.Context, database *db.DB, fallback *types.CVData) *types.CVData {
	cv, rev, err := database.LatestContent(ctx)
	if err != nil {
		logger.Warn("failed to restore snapshot", zap.Error(err))
		return fallback
	}
	if cv == nil {
		return fallback
	}
	logger.Info("restored content snapshot", zap.Int("revision", rev))
	return cv
}
