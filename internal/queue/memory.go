package queue

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"coursehub/internal/metrics"
)

const driverMemory = "memory"

// MemoryQueue is a buffered channel drained by a fixed worker pool.
type MemoryQueue struct {
	jobs    chan Job
	workers int
	logger  zerolog.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewMemoryQueue(workers, buffer int, logger zerolog.Logger, m *metrics.Metrics) *MemoryQueue {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 100
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &MemoryQueue{
		jobs:    make(chan Job, buffer),
		workers: workers,
		logger:  logger.With().Str("component", "memory_queue").Logger(),
		metrics: m,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.metrics.JobsEnqueued.WithLabelValues(driverMemory, "closed").Inc()
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		q.metrics.JobsEnqueued.WithLabelValues(driverMemory, "ok").Inc()
		return nil
	default:
		q.metrics.JobsEnqueued.WithLabelValues(driverMemory, "full").Inc()
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Start(handler Handler) error {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.work(i, handler)
	}
	q.logger.Info().Int("workers", q.workers).Msg("Memory job queue started")
	return nil
}

func (q *MemoryQueue) work(id int, handler Handler) {
	defer q.wg.Done()

	for job := range q.jobs {
		if err := handler(q.ctx, job); err != nil {
			q.logger.Error().Err(err).
				Int("worker", id).
				Str("job", job.Name).
				Str("course_id", job.CourseID.String()).
				Msg("Job failed")
		}
		q.metrics.JobsProcessed.WithLabelValues(driverMemory).Inc()
	}
}

// Stop refuses new jobs, drains the buffer, and cancels running jobs once ctx expires.
func (q *MemoryQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		q.logger.Info().Msg("Memory job queue stopped")
		return nil
	case <-ctx.Done():
		q.cancel()
		return ctx.Err()
	}
}
