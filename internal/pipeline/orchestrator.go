// Package pipeline drives the staged extraction of one certificate
// document: digital text, table supplement, OCR escalation, AI fallback.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nvdat/cocq-tracker/constants"
	"github.com/nvdat/cocq-tracker/internal/extract"
	"github.com/nvdat/cocq-tracker/internal/normalize"
)

// Source supplies the raw views of one document. Errors and empty values
// both count as absence; the orchestrator treats them as escalation
// triggers, never as failures of its own.
type Source interface {
	// RawText returns the digital text layer, if any.
	RawText(ctx context.Context) (string, error)
	// Tables returns structured table content, possibly empty.
	Tables(ctx context.Context) ([]extract.Table, error)
	// HasImages reports whether the first page embeds images.
	HasImages(ctx context.Context) bool
	// OCRText runs OCR; invoked lazily, only when escalation triggers.
	OCRText(ctx context.Context) (string, error)
	// Document returns the raw document bytes for the AI fallback.
	Document(ctx context.Context) ([]byte, error)
}

// AIFields is what the AI fallback reports back.
type AIFields struct {
	Date    string   `json:"date"`
	Serials []string `json:"serial_number"`
}

// AIExtractor is the last-resort external collaborator. A nil extractor
// or a failed call behave identically: the record simply stays empty.
type AIExtractor interface {
	ExtractFields(ctx context.Context, doc []byte) (*AIFields, error)
}

// Result is the reconciled record for one document. Immutable once
// returned; built fresh per call.
type Result struct {
	Date    string // canonical DD/MM/YYYY, or empty
	Serials []extract.Candidate
	Method  constants.Method
}

// SerialCell flattens the serial list to the newline-joined storage form.
// Empty list yields the empty string.
func (r Result) SerialCell() string {
	if len(r.Serials) == 0 {
		return ""
	}
	vals := make([]string, len(r.Serials))
	for i, c := range r.Serials {
		vals[i] = c.Value
	}
	return strings.Join(vals, "\n")
}

type Options struct {
	ForceOCR bool
}

// Orchestrator reconciles the extraction stages for one document at a
// time. It is stateless per call; callers may run many documents in
// parallel, one Extract call each.
type Orchestrator struct {
	AI     AIExtractor // optional
	Logger *slog.Logger
}

func NewOrchestrator(ai AIExtractor, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{AI: ai, Logger: logger}
}

// Extract runs the full staged pipeline against one source and returns a
// best-effort record. It never returns an error: source and collaborator
// failures degrade the method tag instead of aborting.
func (o *Orchestrator) Extract(ctx context.Context, src Source, opts Options) Result {
	method := constants.MethodRegex

	// 1) Digital text layer. Absence or failure means "scanned".
	text, err := src.RawText(ctx)
	if err != nil {
		o.Logger.Debug("pipeline.rawtext.unavailable", "error", err)
		text = ""
	}
	scanned := len(strings.TrimSpace(text)) < 10
	hasImages := src.HasImages(ctx)

	var date string
	var serials []extract.Candidate
	if d, ok := extract.Date(text); ok {
		date = d
	}
	serials = extract.Serials(text)

	// 2) Table supplement.
	tables, err := src.Tables(ctx)
	if err != nil {
		o.Logger.Debug("pipeline.tables.unavailable", "error", err)
	}
	tf := extract.Tables(tables, o.Logger)
	if tf.Date != "" && date == "" {
		if d, ok := extract.Date(tf.Date); ok {
			date = d
		}
	}
	for _, sn := range tf.Serials {
		serials = mergeSerial(serials, extract.Candidate{Value: sn, Origin: constants.OriginTable})
	}

	// 3) Completeness check.
	complete := date != "" && len(serials) > 0

	// 4) OCR escalation. The image-heavy clause is subsumed by plain
	// incompleteness; written out it is force || scanned || !complete.
	if opts.ForceOCR || scanned || !complete {
		o.Logger.Info("pipeline.ocr.triggered",
			"scanned", scanned, "has_images", hasImages, "complete", complete, "forced", opts.ForceOCR)

		ocrText, err := src.OCRText(ctx)
		if err != nil || strings.TrimSpace(ocrText) == "" {
			o.Logger.Warn("pipeline.ocr.failed", "error", err)
			if date == "" && len(serials) == 0 {
				method = constants.MethodOCRFailed
			}
		} else {
			if date != "" || len(serials) > 0 {
				method = constants.MethodRegexOCR
			} else {
				method = constants.MethodOCR
			}
			// OCR is trusted over the digital layer when that layer was
			// unreliable.
			if d, ok := extract.Date(ocrText); ok && (date == "" || scanned) {
				date = d
			}
			for _, c := range extract.Serials(ocrText) {
				c.Origin = constants.OriginOCR
				serials = mergeSerial(serials, c)
			}
		}
	}

	// 5) AI fallback: only when every prior stage came up empty.
	if date == "" && len(serials) == 0 && o.AI != nil {
		if res := o.runAI(ctx, src); res != nil {
			if res.Date != "" {
				date = normalize.Date(res.Date)
			}
			for _, sn := range res.Serials {
				serials = mergeSerial(serials, extract.Candidate{Value: sn, Origin: constants.OriginAI})
			}
			method = constants.MethodAI
		}
	}

	return Result{Date: date, Serials: serials, Method: method}
}

func (o *Orchestrator) runAI(ctx context.Context, src Source) *AIFields {
	doc, err := src.Document(ctx)
	if err != nil {
		o.Logger.Warn("pipeline.ai.document_unavailable", "error", err)
		return nil
	}
	res, err := o.AI.ExtractFields(ctx, doc)
	if err != nil {
		o.Logger.Warn("pipeline.ai.failed", "error", err)
		return nil
	}
	return res
}

// mergeSerial merges a candidate into the running list under the
// substring rule: if either value contains the other they are the same
// entity, and the longer string (more information) wins in place.
// Otherwise the candidate is appended as distinct.
func mergeSerial(list []extract.Candidate, c extract.Candidate) []extract.Candidate {
	for i, existing := range list {
		if strings.Contains(existing.Value, c.Value) || strings.Contains(c.Value, existing.Value) {
			if len(c.Value) > len(existing.Value) {
				list[i] = c
			}
			return list
		}
	}
	return append(list, c)
}
