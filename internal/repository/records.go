package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nvdat/cocq-tracker/internal/normalize"
	"github.com/nvdat/cocq-tracker/internal/serial"
)

// Record is one extracted certificate row, the shape handed to search and
// export. Date is canonical DD/MM/YYYY or empty; SerialNumber is the
// newline-joined annotated serial list, or empty.
type Record struct {
	ID           uuid.UUID
	FileName     string
	Date         string
	SerialNumber string
	Method       string
	DriveLink    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecordRepository is the persistence surface the pipeline and the search
// API depend on.
type RecordRepository interface {
	Upsert(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]Record, error)
	Search(ctx context.Context, serialQuery, dateQuery string) ([]Record, error)
}

type recordRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRecordRepository(db *sql.DB, logger *slog.Logger) RecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &recordRepository{db: db, logger: logger}
}

// Upsert inserts or refreshes the record for a file name. Reprocessing a
// document overwrites the previous extraction rather than duplicating it.
func (r *recordRepository) Upsert(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	const q = `
INSERT INTO records (id, file_name, cert_date, serial_number, method, drive_link, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (file_name) DO UPDATE SET
	cert_date     = EXCLUDED.cert_date,
	serial_number = EXCLUDED.serial_number,
	method        = EXCLUDED.method,
	drive_link    = EXCLUDED.drive_link,
	updated_at    = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, q,
		rec.ID.String(), rec.FileName, rec.Date, rec.SerialNumber, rec.Method, rec.DriveLink,
		rec.CreatedAt.Format(time.RFC3339Nano), rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		r.logger.Error("repository.upsert_failed", "file_name", rec.FileName, "error", err)
		return fmt.Errorf("upsert record: %w", err)
	}
	r.logger.Debug("repository.upserted", "file_name", rec.FileName, "method", rec.Method)
	return nil
}

func (r *recordRepository) List(ctx context.Context) ([]Record, error) {
	const q = `
SELECT id, file_name, cert_date, serial_number, method, drive_link, created_at, updated_at
FROM records ORDER BY file_name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var rec Record
		var id, created, updated string
		if err := rows.Scan(&id, &rec.FileName, &rec.Date, &rec.SerialNumber,
			&rec.Method, &rec.DriveLink, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.ID, _ = uuid.Parse(id)
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Search filters records in memory: serial matching must see through
// range compression and OCR confusion, and date matching must accept both
// raw and normalized user input — neither folds into portable SQL.
func (r *recordRepository) Search(ctx context.Context, serialQuery, dateQuery string) ([]Record, error) {
	recs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	serialQuery = strings.TrimSpace(serialQuery)
	dateQuery = strings.TrimSpace(dateQuery)
	normalizedDateQuery := normalize.Date(dateQuery)

	var out []Record
	for _, rec := range recs {
		if serialQuery != "" && !serial.Matches(serialQuery, rec.SerialNumber) {
			continue
		}
		if dateQuery != "" && !dateMatches(rec.Date, dateQuery, normalizedDateQuery) {
			continue
		}
		out = append(out, rec)
	}
	r.logger.Debug("repository.search",
		"serial_query", serialQuery, "date_query", dateQuery, "hits", len(out))
	return out, nil
}

// dateMatches accepts either the user's raw spelling or its normalized
// form against the stored (normalized) date.
func dateMatches(stored, rawQuery, normalizedQuery string) bool {
	storedNorm := strings.ToLower(normalize.Date(stored))
	return strings.Contains(storedNorm, strings.ToLower(rawQuery)) ||
		strings.Contains(storedNorm, strings.ToLower(normalizedQuery))
}
