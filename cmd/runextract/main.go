package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nvdat/cocq-tracker/internal/common"
	"github.com/nvdat/cocq-tracker/internal/ocr"
	"github.com/nvdat/cocq-tracker/internal/pdfsource"
	"github.com/nvdat/cocq-tracker/internal/pipeline"
)

// runextract runs the extraction pipeline against one PDF and prints the
// result, for debugging extractor behavior without a database.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <certificate.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]
	if _, err := os.Stat(path); err != nil {
		logger.Error("cannot read file", "path", path, "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ocrx := ocr.NewExtractor(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	orc := pipeline.NewOrchestrator(nil, logger)
	src := pdfsource.New(path, ocrx, logger)

	start := time.Now()
	res := orc.Extract(ctx, src, pipeline.Options{ForceOCR: os.Getenv("FORCE_OCR") == "true"})
	dur := time.Since(start)

	serials := make([]string, 0, len(res.Serials))
	origins := make([]string, 0, len(res.Serials))
	for _, c := range res.Serials {
		serials = append(serials, c.Value)
		origins = append(origins, string(c.Origin))
	}
	out := map[string]any{
		"file":        path,
		"date":        res.Date,
		"serials":     serials,
		"origins":     origins,
		"method":      string(res.Method),
		"duration_ms": dur.Milliseconds(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
