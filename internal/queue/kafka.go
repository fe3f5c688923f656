package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"coursehub/internal/metrics"
)

const (
	driverKafka = "kafka"

	minBytes = 1
	maxBytes = 10e6
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// KafkaQueue publishes jobs asynchronously and consumes them with a group reader.
type KafkaQueue struct {
	cfg     KafkaConfig
	writer  *kafka.Writer
	reader  *kafka.Reader
	logger  zerolog.Logger
	metrics *metrics.Metrics

	started bool
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewKafkaQueue(cfg KafkaConfig, logger zerolog.Logger, m *metrics.Metrics) (*KafkaQueue, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers specified")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	logger = logger.With().Str("component", "kafka_queue").Logger()

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				m.JobsEnqueued.WithLabelValues(driverKafka, "error").Add(float64(len(messages)))
				logger.Error().Err(err).Int("messages", len(messages)).Msg("Failed to publish jobs")
				return
			}
			m.JobsEnqueued.WithLabelValues(driverKafka, "ok").Add(float64(len(messages)))
		},
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    minBytes,
		MaxBytes:    maxBytes,
		MaxWait:     3 * time.Second,
		StartOffset: kafka.FirstOffset,
	})

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Str("group_id", cfg.GroupID).
		Msg("Kafka job queue initialized")

	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaQueue{
		cfg:     cfg,
		writer:  writer,
		reader:  reader,
		logger:  logger,
		metrics: m,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Enqueue hands the job to the async writer; delivery errors surface in Completion.
func (q *KafkaQueue) Enqueue(ctx context.Context, job Job) error {
	data, err := encode(job)
	if err != nil {
		return err
	}

	return q.writer.WriteMessages(context.WithoutCancel(ctx), kafka.Message{
		Key:   []byte(job.CourseID.String()),
		Value: data,
	})
}

func (q *KafkaQueue) Start(handler Handler) error {
	q.started = true
	go q.consume(handler)
	q.logger.Info().Msg("Kafka consumer started")
	return nil
}

func (q *KafkaQueue) consume(handler Handler) {
	defer close(q.done)

	for {
		msg, err := q.reader.FetchMessage(q.ctx)
		if err != nil {
			if q.ctx.Err() != nil {
				return
			}
			q.logger.Error().Err(err).Msg("Failed to fetch message")
			continue
		}

		q.logger.Debug().
			Str("topic", msg.Topic).
			Int("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Msg("Received job from Kafka")

		job, err := decode(msg.Value)
		if err != nil {
			q.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Dropping malformed job")
		} else if err := handler(q.ctx, job); err != nil {
			q.logger.Error().Err(err).
				Str("course_id", job.CourseID.String()).
				Int64("offset", msg.Offset).
				Msg("Job failed")
		}
		q.metrics.JobsProcessed.WithLabelValues(driverKafka).Inc()

		// Failed jobs are committed too: notifications are best effort.
		if err := q.reader.CommitMessages(q.ctx, msg); err != nil && q.ctx.Err() == nil {
			q.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to commit message")
		}
	}
}

func (q *KafkaQueue) Stop(ctx context.Context) error {
	var firstErr error
	if err := q.writer.Close(); err != nil {
		q.logger.Error().Err(err).Msg("Failed to close Kafka writer")
		firstErr = err
	}

	q.cancel()
	if err := q.reader.Close(); err != nil {
		q.logger.Error().Err(err).Msg("Failed to close Kafka reader")
		if firstErr == nil {
			firstErr = err
		}
	}

	if q.started {
		select {
		case <-q.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	q.logger.Info().Msg("Kafka job queue stopped")
	return firstErr
}
