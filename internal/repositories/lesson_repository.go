package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

type LessonFilter struct {
	CourseID *uuid.UUID
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *db_models.Lesson) error
	Update(ctx context.Context, lesson *db_models.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindById(ctx context.Context, id uuid.UUID) (*db_models.Lesson, error)
	FindVisible(ctx context.Context, v access.Visibility, id uuid.UUID) (*db_models.Lesson, error)
	ListVisible(ctx context.Context, v access.Visibility, filter LessonFilter, page utils.Pagination) ([]db_models.Lesson, int64, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *db_models.Lesson) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lesson).Error
}

func (r *lessonRepository) Update(ctx context.Context, lesson *db_models.Lesson) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(lesson).Error; err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}
	return nil
}

// Delete removes the lesson and the payments made for it.
func (r *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&db_models.Payment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&db_models.Lesson{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *lessonRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Lesson, error) {
	var lesson db_models.Lesson
	err := r.db.WithContext(ctx).Preload("Course").First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &lesson, nil
}

// FindVisible preloads the parent course so callers can apply course-owner rights.
func (r *lessonRepository) FindVisible(ctx context.Context, v access.Visibility, id uuid.UUID) (*db_models.Lesson, error) {
	var lesson db_models.Lesson
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(v, access.ResourceLesson)).
		Preload("Course").
		First(&lesson, "lessons.id = ?", id).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &lesson, nil
}

func (r *lessonRepository) ListVisible(ctx context.Context, v access.Visibility, filter LessonFilter, page utils.Pagination) ([]db_models.Lesson, int64, error) {
	var (
		lessons []db_models.Lesson
		total   int64
	)

	query := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&db_models.Lesson{}).Scopes(visibleTo(v, access.ResourceLesson))
		if filter.CourseID != nil {
			db = db.Where("lessons.course_id = ?", *filter.CourseID)
		}
		return db
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().Scopes(paginate(page)).
		Order("lessons.created_at ASC, lessons.id ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}
