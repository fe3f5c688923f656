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
	"coursehub/internal/queue"
	"coursehub/internal/repositories"
	"coursehub/pkg/utils"
)

type LessonServiceInterface interface {
	List(ctx context.Context, actor access.Actor, filter repositories.LessonFilter, page utils.Pagination) (*response_models.PageResponse[response_models.LessonResponse], error)
	Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*response_models.LessonResponse, error)
	Create(ctx context.Context, actor access.Actor, req request_models.LessonRequest) (*response_models.LessonResponse, error)
	Update(ctx context.Context, actor access.Actor, id uuid.UUID, req request_models.PatchLessonRequest) (*response_models.LessonResponse, error)
	Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type LessonService struct {
	lessonRepo repositories.LessonRepository
	courseRepo repositories.CourseRepository
	jobs       queue.Publisher
	logger     zerolog.Logger
}

func NewLessonService(
	lessonRepo repositories.LessonRepository,
	courseRepo repositories.CourseRepository,
	jobs queue.Publisher,
	logger zerolog.Logger,
) LessonServiceInterface {
	return &LessonService{
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
		jobs:       jobs,
		logger:     logger.With().Str("service", "lesson").Logger(),
	}
}

func (s *LessonService) List(ctx context.Context, actor access.Actor, filter repositories.LessonFilter, page utils.Pagination) (*response_models.PageResponse[response_models.LessonResponse], error) {
	lessons, total, err := s.lessonRepo.ListVisible(ctx, access.VisibilityFor(actor), filter, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	items := make([]response_models.LessonResponse, 0, len(lessons))
	for i := range lessons {
		items = append(items, response_models.NewLessonResponse(&lessons[i]))
	}
	return response_models.NewPage(items, page.Page, page.PageSize, total), nil
}

func (s *LessonService) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*response_models.LessonResponse, error) {
	lesson, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewLessonResponse(lesson)
	return &resp, nil
}

func (s *LessonService) Create(ctx context.Context, actor access.Actor, req request_models.LessonRequest) (*response_models.LessonResponse, error) {
	if err := access.AuthorizeCreate(actor, access.ResourceLesson); err != nil {
		return nil, err
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, utils.ErrInvalidPrice
	}
	if err := s.requireCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	ownerID := actor.ID()
	lesson := &db_models.Lesson{
		CourseID:    req.CourseID,
		Name:        req.Name,
		Description: req.Description,
		Preview:     req.Preview,
		VideoURL:    req.VideoURL,
		Price:       *req.Price,
		OwnerID:     &ownerID,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info().Str("lesson_id", lesson.ID.String()).Str("actor_id", actor.String()).Msg("lesson created")
	s.notifySubscribers(ctx, lesson.CourseID)

	resp := response_models.NewLessonResponse(lesson)
	return &resp, nil
}

func (s *LessonService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, req request_models.PatchLessonRequest) (*response_models.LessonResponse, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	lesson, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	canModify := access.CanModifyLesson(actor, lesson, lesson.Course)
	if err := access.AuthorizeUpdate(actor, access.ResourceLesson, canModify); err != nil {
		return nil, err
	}

	if req.CourseID != nil && *req.CourseID != lesson.CourseID {
		if err := s.requireCourse(ctx, *req.CourseID); err != nil {
			return nil, err
		}
		lesson.CourseID = *req.CourseID
	}
	if req.Name != nil {
		lesson.Name = *req.Name
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Preview != nil {
		lesson.Preview = req.Preview
	}
	if req.VideoURL != nil {
		lesson.VideoURL = req.VideoURL
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, utils.ErrInvalidPrice
		}
		lesson.Price = *req.Price
	}

	lesson.Course = nil
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info().Str("lesson_id", lesson.ID.String()).Str("actor_id", actor.String()).Msg("lesson updated")
	s.notifySubscribers(ctx, lesson.CourseID)

	resp := response_models.NewLessonResponse(lesson)
	return &resp, nil
}

func (s *LessonService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if err := access.AuthorizeDelete(actor, access.ResourceLesson); err != nil {
		return err
	}

	lesson, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := access.RequireOwnership(access.ResourceLesson, access.CanModifyLesson(actor, lesson, lesson.Course)); err != nil {
		return err
	}

	if err := s.lessonRepo.Delete(ctx, lesson.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info().Str("lesson_id", lesson.ID.String()).Str("actor_id", actor.String()).Msg("lesson deleted")
	return nil
}

// notifySubscribers schedules the job and moves on; the request never waits for delivery.
func (s *LessonService) notifySubscribers(ctx context.Context, courseID uuid.UUID) {
	if err := s.jobs.Enqueue(ctx, queue.NotifySubscribers(courseID)); err != nil {
		s.logger.Warn().Err(err).Str("course_id", courseID.String()).Msg("failed to enqueue subscriber notification")
	}
}

func (s *LessonService) requireCourse(ctx context.Context, courseID uuid.UUID) error {
	course, err := s.courseRepo.FindById(ctx, courseID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if course == nil {
		return utils.ErrCourseRequired
	}
	return nil
}

func (s *LessonService) findVisible(ctx context.Context, actor access.Actor, id uuid.UUID) (*db_models.Lesson, error) {
	lesson, err := s.lessonRepo.FindVisible(ctx, access.VisibilityFor(actor), id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if lesson == nil {
		return nil, utils.ErrNotFound
	}
	return lesson, nil
}
