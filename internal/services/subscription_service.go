package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"coursehub/internal/access"
	"coursehub/internal/models/response_models"
	"coursehub/internal/repositories"
	"coursehub/pkg/utils"
)

type SubscriptionServiceInterface interface {
	Subscribe(ctx context.Context, actor access.Actor, courseID uuid.UUID) (*response_models.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, actor access.Actor, courseID uuid.UUID) error
	List(ctx context.Context, actor access.Actor, page utils.Pagination) (*response_models.PageResponse[response_models.SubscriptionResponse], error)
}

type SubscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	courseRepo       repositories.CourseRepository
	logger           zerolog.Logger
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	courseRepo repositories.CourseRepository,
	logger zerolog.Logger,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		courseRepo:       courseRepo,
		logger:           logger.With().Str("service", "subscription").Logger(),
	}
}

// Subscribe is idempotent: repeated calls keep a single flagged row.
func (s *SubscriptionService) Subscribe(ctx context.Context, actor access.Actor, courseID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindById(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if course == nil {
		return nil, utils.ErrNotFound
	}

	sub, err := s.subscriptionRepo.Upsert(ctx, actor.ID(), courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info().Str("course_id", courseID.String()).Str("actor_id", actor.String()).Msg("subscribed")

	sub.Course = course
	resp := response_models.NewSubscriptionResponse(sub)
	return &resp, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, actor access.Actor, courseID uuid.UUID) error {
	if err := access.RequireAuthenticated(actor); err != nil {
		return err
	}

	ok, err := s.subscriptionRepo.Deactivate(ctx, actor.ID(), courseID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !ok {
		return utils.ErrNotFound
	}

	s.logger.Info().Str("course_id", courseID.String()).Str("actor_id", actor.String()).Msg("unsubscribed")
	return nil
}

func (s *SubscriptionService) List(ctx context.Context, actor access.Actor, page utils.Pagination) (*response_models.PageResponse[response_models.SubscriptionResponse], error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	subs, total, err := s.subscriptionRepo.ListByUser(ctx, actor.ID(), page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	items := make([]response_models.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		items = append(items, response_models.NewSubscriptionResponse(&subs[i]))
	}
	return response_models.NewPage(items, page.Page, page.PageSize, total), nil
}
