package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/models/response_models"
	"coursehub/internal/repositories"
	"coursehub/pkg/utils"
)

type CourseServiceInterface interface {
	List(ctx context.Context, actor access.Actor, page utils.Pagination) (*response_models.PageResponse[response_models.CourseResponse], error)
	Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*response_models.CourseResponse, error)
	Create(ctx context.Context, actor access.Actor, req request_models.CourseRequest) (*response_models.CourseResponse, error)
	Update(ctx context.Context, actor access.Actor, id uuid.UUID, req request_models.PatchCourseRequest) (*response_models.CourseResponse, error)
	Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type CourseService struct {
	courseRepo       repositories.CourseRepository
	subscriptionRepo repositories.SubscriptionRepository
	logger           zerolog.Logger
}

func NewCourseService(
	courseRepo repositories.CourseRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	logger zerolog.Logger,
) CourseServiceInterface {
	return &CourseService{
		courseRepo:       courseRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger.With().Str("service", "course").Logger(),
	}
}

func (s *CourseService) List(ctx context.Context, actor access.Actor, page utils.Pagination) (*response_models.PageResponse[response_models.CourseResponse], error) {
	courses, total, err := s.courseRepo.ListVisible(ctx, access.VisibilityFor(actor), page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	ids := make([]uuid.UUID, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	counts, err := s.courseRepo.CountLessons(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	subscribed, err := s.subscriptionRepo.ActiveCourseIDs(ctx, actor.ID(), ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	items := make([]response_models.CourseResponse, 0, len(courses))
	for i := range courses {
		resp := response_models.NewCourseResponse(&courses[i])
		resp.LessonsCount = counts[courses[i].ID]
		resp.IsSubscribed = subscribed[courses[i].ID]
		items = append(items, resp)
	}

	return response_models.NewPage(items, page.Page, page.PageSize, total), nil
}

func (s *CourseService) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*response_models.CourseResponse, error) {
	course, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, actor, course)
}

func (s *CourseService) Create(ctx context.Context, actor access.Actor, req request_models.CourseRequest) (*response_models.CourseResponse, error) {
	if err := access.AuthorizeCreate(actor, access.ResourceCourse); err != nil {
		return nil, err
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, utils.ErrInvalidPrice
	}

	ownerID := actor.ID()
	course := &db_models.Course{
		Name:        req.Name,
		Description: req.Description,
		Preview:     req.Preview,
		Price:       *req.Price,
		OwnerID:     &ownerID,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info().Str("course_id", course.ID.String()).Str("actor_id", actor.String()).Msg("course created")
	return s.toResponse(ctx, actor, course)
}

func (s *CourseService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, req request_models.PatchCourseRequest) (*response_models.CourseResponse, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	course, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeUpdate(actor, access.ResourceCourse, access.CanModifyCourse(actor, course)); err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Preview != nil {
		course.Preview = req.Preview
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, utils.ErrInvalidPrice
		}
		course.Price = *req.Price
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info().Str("course_id", course.ID.String()).Str("actor_id", actor.String()).Msg("course updated")
	return s.toResponse(ctx, actor, course)
}

func (s *CourseService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if err := access.AuthorizeDelete(actor, access.ResourceCourse); err != nil {
		return err
	}

	course, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := access.RequireOwnership(access.ResourceCourse, access.CanModifyCourse(actor, course)); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, course.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info().Str("course_id", course.ID.String()).Str("actor_id", actor.String()).Msg("course deleted")
	return nil
}

func (s *CourseService) findVisible(ctx context.Context, actor access.Actor, id uuid.UUID) (*db_models.Course, error) {
	course, err := s.courseRepo.FindVisible(ctx, access.VisibilityFor(actor), id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if course == nil {
		return nil, utils.ErrNotFound
	}
	return course, nil
}

func (s *CourseService) toResponse(ctx context.Context, actor access.Actor, course *db_models.Course) (*response_models.CourseResponse, error) {
	resp := response_models.NewCourseResponse(course)

	if course.Lessons == nil {
		counts, err := s.courseRepo.CountLessons(ctx, []uuid.UUID{course.ID})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		resp.LessonsCount = counts[course.ID]
	}

	subscribed, err := s.subscriptionRepo.ActiveCourseIDs(ctx, actor.ID(), []uuid.UUID{course.ID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	resp.IsSubscribed = subscribed[course.ID]

	return &resp, nil
}
