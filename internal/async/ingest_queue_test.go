package async

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvdat/cocq-tracker/internal/repository"
)

type fakeProcessor struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeProcessor) ProcessFile(_ context.Context, path string) (*repository.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return &repository.Record{FileName: path}, nil
}

func (f *fakeProcessor) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.paths...)
	sort.Strings(out)
	return out
}

func TestIngestQueueProcessesAndDrains(t *testing.T) {
	proc := &fakeProcessor{}
	q := NewIngestQueue(proc, nil, WithWorkers(2))

	for _, p := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{Path: p}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, proc.seen())
}

func TestIngestQueueEnqueueAfterShutdown(t *testing.T) {
	proc := &fakeProcessor{}
	q := NewIngestQueue(proc, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "late.pdf"}))
	assert.Empty(t, proc.seen())
}

func TestJobWithDefaults(t *testing.T) {
	got := Job{Path: "x.pdf"}.withDefaults()
	assert.NotEmpty(t, got.TraceID)
	assert.False(t, got.SubmittedAt.IsZero())

	stamped := Job{Path: "y.pdf", TraceID: "fixed", SubmittedAt: time.Unix(100, 0)}
	assert.Equal(t, stamped, stamped.withDefaults())
}
