// Package pdfsource adapts a local PDF file to the pipeline's Source
// interface: digital text layer, reconstructed table rows, embedded-image
// detection, and lazy OCR escalation.
package pdfsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpulib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nvdat/cocq-tracker/internal/extract"
	"github.com/nvdat/cocq-tracker/internal/ocr"
)

type Provider struct {
	path   string
	ocr    *ocr.Extractor
	logger *slog.Logger
}

func New(path string, ocrx *ocr.Extractor, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{path: path, ocr: ocrx, logger: logger}
}

// RawText returns the PDF's digital text layer, all pages joined. Pages
// that fail to decode are skipped; an unreadable file is an error the
// pipeline treats as "scanned".
func (p *Provider) RawText(_ context.Context) (string, error) {
	f, reader, err := pdf.Open(p.path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.logger.Warn("pdfsource.close_failed", "path", p.path, "error", cerr)
		}
	}()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Tables reconstructs row/cell structure from glyph positions, one table
// per page. The reconstruction is approximate; the table extractor's
// header matching tolerates that.
func (p *Provider) Tables(_ context.Context) ([]extract.Table, error) {
	f, reader, err := pdf.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var tables []extract.Table
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var tbl extract.Table
		for _, row := range rows {
			var cells []string
			for _, t := range row.Content {
				if s := strings.TrimSpace(t.S); s != "" {
					cells = append(cells, s)
				}
			}
			if len(cells) > 0 {
				tbl = append(tbl, cells)
			}
		}
		if len(tbl) > 0 {
			tables = append(tables, tbl)
		}
	}
	return tables, nil
}

// HasImages reports whether the first page carries image XObjects. Any
// parsing failure is reported as "no images"; it only ever costs an OCR
// escalation that the completeness check would trigger anyway.
func (p *Provider) HasImages(_ context.Context) bool {
	f, err := os.Open(p.path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil || pctx.PageCount == 0 || pctx.Optimize == nil {
		return false
	}
	return len(pdfcpulib.ImageObjNrs(pctx, 1)) > 0
}

// OCRText rasterizes the document and OCRs it. Only called when the
// pipeline escalates.
func (p *Provider) OCRText(ctx context.Context) (string, error) {
	if p.ocr == nil {
		return "", fmt.Errorf("ocr not configured")
	}
	res, err := p.ocr.Extract(ctx, p.path)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (p *Provider) Document(_ context.Context) ([]byte, error) {
	return os.ReadFile(p.path)
}
