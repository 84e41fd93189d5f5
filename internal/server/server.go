package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nvdat/cocq-tracker/internal/export"
	"github.com/nvdat/cocq-tracker/internal/repository"
)

// Server exposes the extracted certificate records over HTTP: listing,
// serial/date search with range-aware matching, and XLSX export.
type Server struct {
	records repository.RecordRepository
	export  *export.Service
	logger  *zap.Logger
	http    *http.Server
}

func New(addr string, records repository.RecordRepository, exporter *export.Service, logger *zap.Logger) *Server {
	s := &Server{records: records, export: exporter, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/records", s.handleListRecords)
		r.Get("/search", s.handleSearch)
		r.Get("/export", s.handleExport)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type recordJSON struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	Date         string `json:"date"`
	SerialNumber string `json:"serial_number"`
	Method       string `json:"method"`
	DriveLink    string `json:"drive_link"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toJSON(recs []repository.Record) []recordJSON {
	out := make([]recordJSON, 0, len(recs))
	for _, r := range recs {
		out = append(out, recordJSON{
			ID:           r.ID.String(),
			FileName:     r.FileName,
			Date:         r.Date,
			SerialNumber: r.SerialNumber,
			Method:       r.Method,
			DriveLink:    r.DriveLink,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339Nano),
			UpdatedAt:    r.UpdatedAt.Format(time.RFC3339Nano),
		})
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.records.List(r.Context())
	if err != nil {
		s.logger.Error("list records failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "list records failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"records": toJSON(recs)})
}

// handleSearch filters records by serial and/or date. Serial matching is
// range-aware: a stored cell "A100~A105" matches the query "A103", and
// O/0 confusions on the letter prefix are tolerated.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	serialQ := r.URL.Query().Get("serial")
	dateQ := r.URL.Query().Get("date")
	if serialQ == "" && dateQ == "" {
		s.writeError(w, http.StatusBadRequest, "at least one of serial or date is required")
		return
	}
	recs, err := s.records.Search(r.Context(), serialQ, dateQ)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"records": toJSON(recs)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.export.ExportXLSX(r.Context())
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	name := fmt.Sprintf("certificates-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("export write failed", zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
