package rendering

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds browser start-up plus printing.
const DefaultPDFTimeout = 60 * time.Second

// A4 paper size in inches
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PDFOptions configures RenderPDF.
type PDFOptions struct {
	// ChromePath overrides the Chrome/Chromium executable; empty uses the chromedp lookup.
	ChromePath string
	Timeout    time.Duration
}

// allocatorOptions returns the headless Chrome flags for printing.
func (o PDFOptions) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if o.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(o.ChromePath))
	}
	return opts
}

// RenderPDF prints an HTML page to an A4 PDF with headless Chrome.
// Chrome or Chromium must be installed.
func RenderPDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}

	tmpDir, err := os.MkdirTemp("", "cvportfolio-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &RenderError{Message: "failed to write HTML", Cause: err}
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser printing failed", Cause: err}
	}
	return pdf, nil
}
