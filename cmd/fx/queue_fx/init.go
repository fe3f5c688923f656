package queue_fx

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"coursehub/internal/config"
	"coursehub/internal/metrics"
	"coursehub/internal/queue"
	"coursehub/internal/services"
)

const memoryBuffer = 256

var Module = fx.Options(
	fx.Provide(provideQueue, providePublisher),
	fx.Invoke(registerWorkers),
)

func provideQueue(cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (queue.Queue, error) {
	if cfg.QueueDriver == config.QueueDriverKafka {
		kq, err := queue.NewKafkaQueue(queue.KafkaConfig{
			Brokers: cfg.Brokers(),
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
		}, logger, m)
		if err != nil {
			return nil, err
		}
		return kq, nil
	}
	return queue.NewMemoryQueue(cfg.NotifyWorkers, memoryBuffer, logger, m), nil
}

func providePublisher(q queue.Queue) queue.Publisher {
	return q
}

// registerWorkers starts consuming jobs with the app and drains them on shutdown.
func registerWorkers(lc fx.Lifecycle, q queue.Queue, notifier services.ISubscriptionNotifier) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return q.Start(notifier.Handle)
		},
		OnStop: func(ctx context.Context) error {
			return q.Stop(ctx)
		},
	})
}
