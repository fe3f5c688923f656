package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

type CourseRepository interface {
	Create(ctx context.Context, course *db_models.Course) error
	Update(ctx context.Context, course *db_models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindById(ctx context.Context, id uuid.UUID) (*db_models.Course, error)
	FindVisible(ctx context.Context, v access.Visibility, id uuid.UUID) (*db_models.Course, error)
	ListVisible(ctx context.Context, v access.Visibility, page utils.Pagination) ([]db_models.Course, int64, error)
	CountLessons(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *db_models.Course) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *db_models.Course) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(course)
	if res.Error != nil {
		return fmt.Errorf("failed to update course: %w", res.Error)
	}
	return nil
}

// Delete removes the course together with its lessons, their payments and
// the course's subscriptions in one transaction.
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lessonIDs := tx.Model(&db_models.Lesson{}).Select("id").Where("course_id = ?", id)

		if err := tx.Where("lesson_id IN (?)", lessonIDs).Delete(&db_models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&db_models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&db_models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&db_models.Lesson{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&db_models.Course{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *courseRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Course, error) {
	var course db_models.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &course, nil
}

func (r *courseRepository) FindVisible(ctx context.Context, v access.Visibility, id uuid.UUID) (*db_models.Course, error) {
	var course db_models.Course
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(v, access.ResourceCourse)).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.created_at ASC")
		}).
		First(&course, "courses.id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ListVisible(ctx context.Context, v access.Visibility, page utils.Pagination) ([]db_models.Course, int64, error) {
	var (
		courses []db_models.Course
		total   int64
	)

	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&db_models.Course{}).Scopes(visibleTo(v, access.ResourceCourse))
	}
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().Scopes(paginate(page)).
		Order("courses.created_at ASC, courses.id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepository) CountLessons(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseID uuid.UUID
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&db_models.Lesson{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CourseID] = row.Total
	}
	return counts, nil
}
