package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/api/metrics"
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrClosed is reported to jobs submitted after Close.
var ErrClosed = errors.New("sync dispatcher closed")

// Dispatcher routes sync jobs to a fixed set of workers using consistent
// hashing on the user ID, so the writes of one user never overlap or reorder.
type Dispatcher struct {
	mu      sync.RWMutex
	closed  bool
	workers []chan ports.SyncJob
	wg      sync.WaitGroup
	service ports.SyncService
	log     zerolog.Logger
}

var _ ports.SyncSink = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.SyncService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SyncJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SyncJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Close once their channel is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Submit sends a job to the worker responsible for its user. The call blocks
// only when that worker's buffer is full.
func (d *Dispatcher) Submit(job ports.SyncJob) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		if job.Done != nil {
			job.Done(0, ErrClosed)
		}
		return
	}
	idx := d.shardIndex(job.UserID)
	d.workers[idx] <- job
	metrics.SyncQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// Close stops accepting jobs and waits until queued ones are written or ctx
// expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SyncJob) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.SyncQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Process(ctx, job)
			result := syncResult(err)
			metrics.SyncWritesTotal.WithLabelValues(result).Inc()
			metrics.SyncWriteDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

			if err != nil {
				d.log.Error().Err(err).
					Str("user_id", job.UserID).
					Int("worker_id", id).
					Msg("sync job failed")
			}
		}
	}
}

func syncResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSyncConflict):
		return "conflict"
	default:
		return "error"
	}
}
