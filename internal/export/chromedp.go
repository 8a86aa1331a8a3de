package export

import (
	"context"
	"os"
	"path/filepath"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Exporter turns rendered resume HTML into print artifacts using a
// headless Chrome driven over the DevTools protocol.
type Exporter struct {
	cfg    config.ExportConfig
	logger *errors.Logger
}

// NewExporter creates an exporter with the configured Chrome binary,
// timeout and page geometry.
func NewExporter(cfg config.ExportConfig, logger *errors.Logger) *Exporter {
	return &Exporter{cfg: cfg, logger: logger}
}

// ExportPDF renders the HTML document to a single PDF. Page size defaults
// to A4 and templates may override it with a CSS @page rule.
func (e *Exporter) ExportPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfBuf []byte

	err := e.withPage(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
			WithPaperWidth(e.cfg.PageWidth).
			WithPaperHeight(e.cfg.PageHeight).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, errors.NewExportError(errors.ErrCodeExportFailed, "PDF export failed", err)
	}

	e.logger.Debug("PDF exported", "bytes", len(pdfBuf))
	return pdfBuf, nil
}

// ExportPNG renders the HTML document to a full-page screenshot.
func (e *Exporter) ExportPNG(ctx context.Context, html string) ([]byte, error) {
	var pngBuf []byte

	err := e.withPage(ctx, html, chromedp.FullScreenshot(&pngBuf, 100))
	if err != nil {
		return nil, errors.NewExportError(errors.ErrCodeExportFailed, "PNG export failed", err)
	}

	e.logger.Debug("PNG exported", "bytes", len(pngBuf))
	return pngBuf, nil
}

// withPage loads the HTML into a fresh headless Chrome page and runs the
// capture action once the body is ready. The document is served from a
// temp file so relative asset loading behaves like a real page load.
func (e *Exporter) withPage(ctx context.Context, html string, capture chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.cfg.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, e.cfg.Timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resumeforge-export-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}

	return chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		capture,
	)
}
