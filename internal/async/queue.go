package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is one document to ingest. TraceID ties the enqueue log line to
// the worker's outcome lines for the same file.
type Job struct {
	Path        string
	SubmittedAt time.Time
	TraceID     string
}

// withDefaults fills the bookkeeping fields callers usually leave empty.
func (j Job) withDefaults() Job {
	if j.TraceID == "" {
		j.TraceID = uuid.NewString()
	}
	if j.SubmittedAt.IsZero() {
		j.SubmittedAt = time.Now()
	}
	return j
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
