package ingest

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nvdat/cocq-tracker/constants"
	"github.com/nvdat/cocq-tracker/internal/ocr"
	"github.com/nvdat/cocq-tracker/internal/pdfsource"
	"github.com/nvdat/cocq-tracker/internal/pipeline"
	"github.com/nvdat/cocq-tracker/internal/repository"
)

type Stats struct {
	Scanned   int
	Processed int
	Failed    int
}

// Service extracts one document per call and upserts the resulting
// record. Calls are independent; callers may fan out across workers.
type Service struct {
	Orchestrator *pipeline.Orchestrator
	Records      repository.RecordRepository
	OCR          *ocr.Extractor
	ForceOCR     bool
	Logger       *slog.Logger
}

func NewService(orc *pipeline.Orchestrator, records repository.RecordRepository, ocrx *ocr.Extractor, forceOCR bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Orchestrator: orc, Records: records, OCR: ocrx, ForceOCR: forceOCR, Logger: logger}
}

// ProcessFile runs the full extraction pipeline for one PDF and persists
// the record. The record's Drive Link column carries the local source
// path; extraction itself never fails, so the only error source is the
// store.
func (s *Service) ProcessFile(ctx context.Context, path string) (*repository.Record, error) {
	src := pdfsource.New(path, s.OCR, s.Logger)
	res := s.Orchestrator.Extract(ctx, src, pipeline.Options{ForceOCR: s.ForceOCR})

	rec := &repository.Record{
		FileName:     filepath.Base(path),
		Date:         res.Date,
		SerialNumber: res.SerialCell(),
		Method:       string(res.Method),
		DriveLink:    path,
	}
	if err := s.Records.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	s.Logger.Info("ingest.processed",
		"file", rec.FileName, "method", rec.Method,
		"date", rec.Date, "serials", len(res.Serials))
	return rec, nil
}

// ProcessDirectory walks root and processes every allowed file.
// Individual failures are logged and counted, never fatal.
func (s *Service) ProcessDirectory(ctx context.Context, root string) (Stats, error) {
	var stats Stats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			s.Logger.Warn("ingest.walk_error", "path", path, "error", walkErr)
			return nil
		}
		if d.IsDir() {
			// skip hidden directories outright
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		stats.Scanned++
		if _, perr := s.ProcessFile(ctx, path); perr != nil {
			stats.Failed++
			s.Logger.Error("ingest.process_failed", "path", path, "error", perr)
			return nil
		}
		stats.Processed++
		return nil
	})
	return stats, err
}
