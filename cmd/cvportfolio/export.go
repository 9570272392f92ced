package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/igegov/cv-portfolio/internal/content"
	"github.com/igegov/cv-portfolio/internal/db"
	"github.com/igegov/cv-portfolio/internal/jsonresume"
	"github.com/igegov/cv-portfolio/internal/observability"
	"github.com/igegov/cv-portfolio/internal/schemas"
	"github.com/igegov/cv-portfolio/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export content as a JSON Resume document",
	Long: "Loads the content file, maps it to JSON Resume, validates the result against the bundled " +
		"schema and writes it. An invalid document is reported and not written.",
	RunE: runExport,
}

var (
	exportContent      string
	exportOut          string
	exportSkipValidate bool
	exportRecord       bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportContent, "content", "c", "", "Path to the content file (JSON or YAML)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", `Output path, "-" for stdout (default "resume.json")`)
	exportCmd.Flags().BoolVar(&exportSkipValidate, "skip-validate", false, "Write the document without schema validation")
	exportCmd.Flags().BoolVar(&exportRecord, "record", false, "Record the export in the database (requires DATABASE_URL)")
	rootCmd.AddCommand(exportCmd)
}

type exportOptions struct {
	Content      string
	Out          string
	SkipValidate bool
	Verbose      bool
	DatabaseURL  string
}

func runExport(cmd *cobra.Command, _ []string) error {
	opts := exportOptions{
		Content:      firstNonEmpty(exportContent, settings.Content),
		Out:          firstNonEmpty(exportOut, settings.Out),
		SkipValidate: exportSkipValidate,
		Verbose:      settings.Verbose,
	}
	if exportRecord {
		opts.DatabaseURL = settings.DatabaseURL
		if opts.DatabaseURL == "" {
			return fmt.Errorf("--record requires DATABASE_URL")
		}
	}
	return exportResume(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// exportResume runs load, map, validate and write. Validation errors go to errOut and
// fail the command before anything is written.
func exportResume(ctx context.Context, opts exportOptions, out, errOut io.Writer) error {
	if opts.Content == "" {
		return fmt.Errorf("--content is required")
	}

	cv, err := content.Load(opts.Content)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	doc := jsonresume.Map(cv)
	printer := observability.NewPrinter(errOut)
	if opts.Verbose {
		printer.PrintExportSummary(doc)
		printer.PrintDroppedDates(jsonresume.DroppedDates(cv))
		if leaks, err := jsonresume.ForbiddenPaths(doc); err == nil && len(leaks) > 0 {
			logger.Warn("site-only fields in export", zap.Strings("paths", leaks))
		}
	}

	result := schemas.Result{OK: true}
	if !opts.SkipValidate {
		result = schemas.ValidateResume(doc)
		if opts.Verbose {
			printer.PrintValidation(result)
		}
	}

	if opts.DatabaseURL != "" {
		recordCLIExport(ctx, opts.DatabaseURL, doc, result)
	}

	if !result.OK {
		for _, e := range result.Errors {
			fmt.Fprintf(errOut, "  %s\n", e)
		}
		return fmt.Errorf("resume failed schema validation with %d error(s)", len(result.Errors))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	data = append(data, '\n')

	if opts.Out == "-" {
		_, err := out.Write(data)
		return err
	}
	if err := writeFile(opts.Out, data); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s\n", opts.Out)
	logger.Info("resume exported", zap.String("out", opts.Out), zap.Int("work", len(doc.Work)),
		zap.Int("projects", len(doc.Projects)))
	return nil
}

// recordCLIExport stores the export outcome. Failures are logged and do not fail the export.
func recordCLIExport(ctx context.Context, databaseURL string, doc *types.JSONResume, result schemas.Result) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", zap.Error(err))
		return
	}
	export, err := database.RecordExport(ctx, db.ExportInput{
		Source: db.SourceCLI,
		Valid:  result.OK,
		Errors: result.Errors,
		Resume: doc,
	})
	if err != nil {
		logger.Error("failed to record export", zap.Error(err))
		return
	}
	logger.Info("export recorded", zap.String("id", export.ID.String()))
}

// writeFile writes data to path, creating parent directories
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && !strings.HasSuffix(dir, string(filepath.Separator)) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
