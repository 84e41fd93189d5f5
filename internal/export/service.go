// Package export renders stored certificate records as an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nvdat/cocq-tracker/internal/repository"
)

const sheetName = "Certificates"

// Headers are the canonical record columns, in storage order.
var Headers = []string{"File Name", "Date", "Serial Number", "Method", "Drive Link"}

// Service is a small façade over the record repository that produces XLSX
// bytes for exports.
type Service struct {
	records repository.RecordRepository
	logger  *slog.Logger
}

func NewService(records repository.RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

// ExportXLSX returns a workbook with every stored record.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	return BuildWorkbook(recs)
}

// BuildWorkbook renders the given records into XLSX bytes.
func BuildWorkbook(recs []repository.Record) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for row, r := range recs {
		values := []string{r.FileName, r.Date, r.SerialNumber, r.Method, r.DriveLink}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	slog.Debug("export.workbook_built", "rows", len(recs), "elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}
