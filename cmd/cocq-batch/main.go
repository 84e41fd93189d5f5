package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nvdat/cocq-tracker/internal/ai"
	"github.com/nvdat/cocq-tracker/internal/common"
	"github.com/nvdat/cocq-tracker/internal/export"
	"github.com/nvdat/cocq-tracker/internal/ingest"
	"github.com/nvdat/cocq-tracker/internal/ocr"
	"github.com/nvdat/cocq-tracker/internal/pipeline"
	"github.com/nvdat/cocq-tracker/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory of certificate PDFs to process (required)")
		out      = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		forceOCR = flag.Bool("force-ocr", false, "run OCR even when the digital text layer looks complete")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "certificates.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()

	db, err := repository.Open(ctx, repository.Config{
		DSN:         cfg.Database.DSN,
		DialTimeout: cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	records := repository.NewRecordRepository(db, logger)

	ocrx := ocr.NewExtractor(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	var aiClient pipeline.AIExtractor
	if cfg.AI.APIKey != "" {
		aiClient = ai.NewClient(ai.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.Timeout,
		}, logger)
		logger.Info("AI fallback enabled", "model", cfg.AI.Model)
	} else {
		logger.Warn("GEMINI_API_KEY not configured, AI fallback will be skipped")
	}

	orc := pipeline.NewOrchestrator(aiClient, logger)
	svc := ingest.NewService(orc, records, ocrx, *forceOCR || cfg.Ingest.ForceOCR, logger)

	logger.Info("starting batch extraction", "dir", *dir)
	stats, err := svc.ProcessDirectory(ctx, *dir)
	if err != nil {
		logger.Error("directory walk failed", "error", err)
		os.Exit(1)
	}

	logger.Info("exporting to XLSX", "output", *out)
	exporter := export.NewService(records, logger)
	xlsxBytes, err := exporter.ExportXLSX(ctx)
	if err != nil {
		logger.Error("failed to export records", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch extraction complete",
		"scanned", stats.Scanned,
		"processed", stats.Processed,
		"failed", stats.Failed,
		"output_file", *out)

	fmt.Printf("Batch extraction complete!\n")
	fmt.Printf("- Files scanned: %d\n", stats.Scanned)
	fmt.Printf("- Files processed: %d\n", stats.Processed)
	fmt.Printf("- Failures: %d\n", stats.Failed)
	fmt.Printf("- Output: %s\n", *out)
}
