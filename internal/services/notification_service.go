package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"coursehub/internal/metrics"
	"coursehub/internal/queue"
	"coursehub/internal/repositories"
)

const (
	notifySubjectTemplate = "Changes in the lessons of your course - %s"
	notifyBodyTemplate    = "Dear subscriber, %s!\nSome lessons of the course \"%s\" have recently been updated.\n" +
		"Visit our site soon to see what has changed in the course!"
)

type ISubscriptionNotifier interface {
	// NotifyCourseSubscribers never reports failures; they are logged.
	NotifyCourseSubscribers(ctx context.Context, courseID uuid.UUID)
	Handle(ctx context.Context, job queue.Job) error
}

type subscriptionNotifier struct {
	courseRepo       repositories.CourseRepository
	subscriptionRepo repositories.SubscriptionRepository
	mail             IMailService
	metrics          *metrics.Metrics
	logger           zerolog.Logger
}

func NewSubscriptionNotifier(
	courseRepo repositories.CourseRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	mail IMailService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) ISubscriptionNotifier {
	return &subscriptionNotifier{
		courseRepo:       courseRepo,
		subscriptionRepo: subscriptionRepo,
		mail:             mail,
		metrics:          m,
		logger:           logger.With().Str("component", "subscription_notifier").Logger(),
	}
}

func (n *subscriptionNotifier) Handle(ctx context.Context, job queue.Job) error {
	if job.Name != queue.JobNotifySubscribers {
		return fmt.Errorf("%w: %s", queue.ErrUnknownJob, job.Name)
	}
	n.NotifyCourseSubscribers(ctx, job.CourseID)
	return nil
}

func (n *subscriptionNotifier) NotifyCourseSubscribers(ctx context.Context, courseID uuid.UUID) {
	log := n.logger.With().Str("course_id", courseID.String()).Logger()

	course, err := n.courseRepo.FindById(ctx, courseID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load course")
		return
	}
	if course == nil {
		log.Warn().Msg("course no longer exists, skipping notification")
		return
	}

	subs, err := n.subscriptionRepo.ListActiveByCourse(ctx, courseID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load subscriptions")
		return
	}
	if len(subs) == 0 {
		return
	}

	subject := fmt.Sprintf(notifySubjectTemplate, course.Name)
	for _, sub := range subs {
		if sub.User == nil || sub.User.Email == "" {
			continue
		}

		name := sub.User.DisplayName
		if name == "" {
			name = sub.User.Email
		}
		body := fmt.Sprintf(notifyBodyTemplate, name, course.Name)

		if err := n.mail.Send(ctx, subject, body, []string{sub.User.Email}); err != nil {
			n.metrics.NotificationErrors.Inc()
			log.Error().Err(err).Str("user_id", sub.UserID.String()).Msg("failed to notify subscriber")
			continue
		}
		n.metrics.NotificationsSent.Inc()
	}

	log.Info().Int("subscribers", len(subs)).Msg("course subscribers notified")
}
