package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/igegov/cv-portfolio/internal/content"
	"github.com/igegov/cv-portfolio/internal/jsonresume"
	"github.com/igegov/cv-portfolio/internal/rendering"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume as HTML or PDF",
	Long: "Maps the content file to JSON Resume and renders it with the built-in template. " +
		"The output format follows the --out extension; .pdf prints the page with headless Chrome.",
	RunE: runRender,
}

var (
	renderContent       string
	renderOut           string
	renderPhotoFallback string
)

func init() {
	renderCmd.Flags().StringVarP(&renderContent, "content", "c", "", "Path to the content file (JSON or YAML)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "resume.html", "Output path ending in .html or .pdf")
	renderCmd.Flags().StringVar(&renderPhotoFallback, "photo-fallback", rendering.DefaultPhotoPath, "Photo used when the resume image is unusable")
	rootCmd.AddCommand(renderCmd)
}

type renderOptions struct {
	Content       string
	Out           string
	PhotoFallback string
	ChromePath    string
}

func runRender(cmd *cobra.Command, _ []string) error {
	return renderResume(cmd.Context(), renderOptions{
		Content:       firstNonEmpty(renderContent, settings.Content),
		Out:           renderOut,
		PhotoFallback: renderPhotoFallback,
		ChromePath:    settings.ChromePath,
	}, cmd.OutOrStdout())
}

func renderResume(ctx context.Context, opts renderOptions, out io.Writer) error {
	if opts.Content == "" {
		return fmt.Errorf("--content is required")
	}
	ext := strings.ToLower(filepath.Ext(opts.Out))
	if ext != ".html" && ext != ".pdf" {
		return fmt.Errorf("unsupported output format %q: use .html or .pdf", ext)
	}

	cv, err := content.Load(opts.Content)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	html, err := rendering.RenderHTML(jsonresume.Map(cv), rendering.HTMLOptions{PhotoFallback: opts.PhotoFallback})
	if err != nil {
		return err
	}

	data := []byte(html)
	if ext == ".pdf" {
		data, err = rendering.RenderPDF(ctx, html, rendering.PDFOptions{ChromePath: opts.ChromePath})
		if err != nil {
			return err
		}
	}

	if err := writeFile(opts.Out, data); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", opts.Out)
	logger.Info("resume rendered", zap.String("out", opts.Out), zap.Int("bytes", len(data)))
	return nil
}
