package queue

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/erpdash/user-directory/internal/api/metrics"
	"github.com/erpdash/user-directory/internal/core/domain"
	"github.com/erpdash/user-directory/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256

	// drainTimeout bounds the final flush of buffered entries at shutdown.
	drainTimeout = 5 * time.Second
)

// Recorder persists audit entries asynchronously on a fixed set of workers,
// sharded by target user ID so entries about the same account stay ordered.
// Delivery failures are logged, never propagated to the mutation that
// produced the entry.
type Recorder struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// flushes the entries still buffered on its channel before returning.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry on the worker responsible for its target account.
// When the worker's buffer is full the entry is dropped rather than blocking
// the directory mutation that produced it.
func (r *Recorder) Record(entry domain.AuditEntry) {
	i := r.shardIndex(entry.TargetID)
	select {
	case r.workers[i] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(r.workers[i])))
	default:
		r.log.Warn().
			Int64("target_id", entry.TargetID).
			Str("action", string(entry.Action)).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a target ID deterministically to a worker index.
func (r *Recorder) shardIndex(targetID int64) int {
	if targetID < 0 {
		targetID = -targetID
	}
	return int(targetID) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			r.drain(id, ch)
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := r.repo.Insert(ctx, &entry); err != nil {
				r.log.Error().Err(err).
					Int64("target_id", entry.TargetID).
					Int("worker_id", id).
					Msg("audit entry persistence failed")
			}
		}
	}
}

// drain persists whatever is still buffered on the worker's channel. The
// worker's own ctx is already cancelled at this point, so the flush runs
// under its own deadline.
func (r *Recorder) drain(id int, ch <-chan domain.AuditEntry) {
	flushCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case entry := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := r.repo.Insert(flushCtx, &entry); err != nil {
				r.log.Error().Err(err).
					Int64("target_id", entry.TargetID).
					Int("worker_id", id).
					Msg("audit entry persistence failed during shutdown")
				return
			}
		default:
			return
		}
	}
}
