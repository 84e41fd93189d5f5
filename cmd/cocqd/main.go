package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nvdat/cocq-tracker/constants"
	"github.com/nvdat/cocq-tracker/internal/ai"
	"github.com/nvdat/cocq-tracker/internal/async"
	"github.com/nvdat/cocq-tracker/internal/common"
	"github.com/nvdat/cocq-tracker/internal/export"
	"github.com/nvdat/cocq-tracker/internal/ingest"
	"github.com/nvdat/cocq-tracker/internal/ocr"
	"github.com/nvdat/cocq-tracker/internal/pipeline"
	"github.com/nvdat/cocq-tracker/internal/repository"
	"github.com/nvdat/cocq-tracker/internal/server"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(slogger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		DSN:         cfg.Database.DSN,
		DialTimeout: cfg.Database.DialTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer func() { _ = db.Close() }()
	log.Infow("database ready", "dsn", cfg.Database.DSN)

	records := repository.NewRecordRepository(db, slogger)
	exporter := export.NewService(records, slogger)

	ocrx := ocr.NewExtractor(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, slogger)

	var aiClient pipeline.AIExtractor
	if cfg.AI.APIKey != "" {
		aiClient = ai.NewClient(ai.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.Timeout,
		}, slogger)
		log.Infow("AI fallback enabled", "model", cfg.AI.Model)
	} else {
		log.Warn("GEMINI_API_KEY not configured, AI fallback disabled")
	}

	orc := pipeline.NewOrchestrator(aiClient, slogger)
	svc := ingest.NewService(orc, records, ocrx, cfg.Ingest.ForceOCR, slogger)

	queue := async.NewIngestQueue(svc, slogger)

	// Watcher is optional; without WATCH_DIRS the daemon only serves the API.
	if len(cfg.Ingest.Roots) > 0 {
		files, errs, werr := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       cfg.Ingest.Roots,
			AllowedExts: constants.AllowedExtensions,
			InitialScan: cfg.Ingest.InitialScan,
			Debounce:    cfg.Ingest.Debounce,
		})
		if werr != nil {
			log.Fatalf("starting watcher: %v", werr)
		}
		log.Infow("watching for certificates", "roots", cfg.Ingest.Roots)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case path, ok := <-files:
					if !ok {
						return
					}
					_ = queue.Enqueue(ctx, async.Job{Path: path, SubmittedAt: time.Now()})
				case werr, ok := <-errs:
					if ok && werr != nil {
						log.Warnw("watcher error", "error", werr)
					}
				}
			}
		}()
	}

	srv := server.New(cfg.Server.HTTPAddr, records, exporter, logger)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
	queue.Shutdown(shutdownCtx)
	log.Info("stopped")
}
