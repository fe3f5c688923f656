// Package queue runs notification jobs outside the request that scheduled them.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const JobNotifySubscribers = "notify_subscribers"

var (
	ErrQueueFull   = errors.New("job queue is full")
	ErrQueueClosed = errors.New("job queue is closed")
	ErrUnknownJob  = errors.New("unknown job")
)

type Job struct {
	Name       string    `json:"job"`
	CourseID   uuid.UUID `json:"course_id"`
	EnqueuedAt int64     `json:"enqueued_at"`
}

func NotifySubscribers(courseID uuid.UUID) Job {
	return Job{Name: JobNotifySubscribers, CourseID: courseID, EnqueuedAt: time.Now().Unix()}
}

// Handler executes a job. Its error is only logged.
type Handler func(ctx context.Context, job Job) error

// Publisher schedules a job and returns without waiting for it to run.
type Publisher interface {
	Enqueue(ctx context.Context, job Job) error
}

type Queue interface {
	Publisher
	Start(handler Handler) error
	Stop(ctx context.Context) error
}

func encode(job Job) ([]byte, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job: %w", err)
	}
	return data, nil
}

func decode(data []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	if job.Name == "" {
		job.Name = JobNotifySubscribers
	}
	return job, nil
}
