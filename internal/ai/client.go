// Package ai is the last-resort extraction collaborator: it sends the raw
// PDF to a Gemini model and asks for the issue date and serial numbers as
// JSON. Invoked only when every regex/table/OCR stage came up empty.
package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nvdat/cocq-tracker/internal/pipeline"
)

type Config struct {
	APIKey  string
	Model   string        // default "gemini-2.0-flash"
	BaseURL string        // default Google Generative Language API
	Timeout time.Duration // default 60s
}

type Client struct {
	cfg   Config
	httpc *http.Client
	log   *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
		log:   logger,
	}
}

const extractionPrompt = `You are a specialized document OCR agent for CO (Certificate of Origin) and CQ (Certificate of Quality).
Your task is to extract exact metadata from the provided PDF, which may be a scanned photo, blurry, or low-quality.

Search for:
1. Date: The document issue date or certificate date. Format as YYYY-MM-DD.
2. Serial Numbers: Any identifying numbers like Lot No, Serial No, Heat No, Certificate No.
   - Extract the full value.
   - If it's for a specific component (e.g., Tube, Steel, Plate), format it as "Value (Component)".

CRITICAL:
- If the text is rotated or blurry, do your best to read it.
- Only return data you are confident in. Use null if not found.
- Return ONLY a JSON object with keys "date" and "serial_number" (list of strings).`

// ExtractFields implements pipeline.AIExtractor. A missing API key is
// reported as an ordinary error so the caller treats it exactly like a
// failed call.
func (c *Client) ExtractFields(ctx context.Context, doc []byte) (*pipeline.AIFields, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("ai: no API key configured")
	}

	rid := uuid.New().String()
	start := time.Now()
	c.log.Info("ai.extract.start", "req_id", rid, "model", c.cfg.Model, "pdf_bytes", len(doc))

	body := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"inline_data": map[string]any{
						"mime_type": "application/pdf",
						"data":      base64.StdEncoding.EncodeToString(doc),
					}},
					{"text": extractionPrompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"response_mime_type": "application/json",
		},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	raw, _, err := sendJSON(ctx, c.httpc, endpoint, body, map[string]string{
		"x-goog-api-key": c.cfg.APIKey,
	}, c.log)
	if err != nil {
		c.log.Error("ai.extract.http_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	var gr struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty gemini response")
	}

	content := []byte(stripFences(gr.Candidates[0].Content.Parts[0].Text))
	fields, err := decodeFields(content)
	if err != nil {
		c.log.Error("ai.extract.bad_payload", "req_id", rid, "error", err, "content", string(content))
		return nil, err
	}

	c.log.Info("ai.extract.ok", "req_id", rid,
		"date", fields.Date, "serials", len(fields.Serials),
		"elapsed_ms", time.Since(start).Milliseconds())
	return fields, nil
}

func decodeFields(content []byte) (*pipeline.AIFields, error) {
	if err := validateAgainstSchema(certificateSchema(), content); err != nil {
		return nil, err
	}
	var payload struct {
		Date         *string  `json:"date"`
		SerialNumber []string `json:"serial_number"`
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	out := &pipeline.AIFields{Serials: payload.SerialNumber}
	if payload.Date != nil {
		out.Date = strings.TrimSpace(*payload.Date)
	}
	return out, nil
}

// stripFences removes a wrapping markdown code fence, which some models
// emit even when asked for raw JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
