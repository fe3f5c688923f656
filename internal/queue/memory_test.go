package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/metrics"
)

func TestMemoryQueue_RunsJobs(t *testing.T) {
	m := metrics.NewNop()
	q := NewMemoryQueue(2, 10, zerolog.Nop(), m)

	var (
		mu   sync.Mutex
		seen []uuid.UUID
		wg   sync.WaitGroup
	)
	wg.Add(3)
	require.NoError(t, q.Start(func(ctx context.Context, job Job) error {
		defer wg.Done()
		mu.Lock()
		seen = append(seen, job.CourseID)
		n := len(seen)
		mu.Unlock()
		if n == 2 {
			return errors.New("boom")
		}
		return nil
	}))

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		require.NoError(t, q.Enqueue(context.Background(), NotifySubscribers(id)))
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Stop(ctx))

	assert.ElementsMatch(t, ids, seen)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.JobsEnqueued.WithLabelValues(driverMemory, "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.JobsProcessed.WithLabelValues(driverMemory)))
}

func TestMemoryQueue_EnqueueNeverBlocks(t *testing.T) {
	q := NewMemoryQueue(1, 1, zerolog.Nop(), metrics.NewNop())

	require.NoError(t, q.Enqueue(context.Background(), NotifySubscribers(uuid.New())))
	assert.ErrorIs(t, q.Enqueue(context.Background(), NotifySubscribers(uuid.New())), ErrQueueFull)

	require.NoError(t, q.Stop(context.Background()))
	assert.ErrorIs(t, q.Enqueue(context.Background(), NotifySubscribers(uuid.New())), ErrQueueClosed)
}

func TestJobCodec(t *testing.T) {
	job := NotifySubscribers(uuid.New())

	data, err := encode(job)
	require.NoError(t, err)

	decoded, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, job, decoded)

	legacy, err := decode([]byte(`{"course_id":"` + job.CourseID.String() + `"}`))
	require.NoError(t, err)
	assert.Equal(t, JobNotifySubscribers, legacy.Name)

	_, err = decode([]byte("not json"))
	assert.Error(t, err)
}
