package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

type SubscriptionRepository interface {
	Upsert(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Subscription, error)
	Deactivate(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	Find(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Subscription, error)

	ListByUser(ctx context.Context, userID uuid.UUID, page utils.Pagination) ([]db_models.Subscription, int64, error)
	ListActiveByCourse(ctx context.Context, courseID uuid.UUID) ([]db_models.Subscription, error)
	ActiveCourseIDs(ctx context.Context, userID uuid.UUID, courseIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Upsert relies on the unique (user_id, course_id) index so concurrent
// subscribes converge on one row.
func (r *subscriptionRepository) Upsert(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Subscription, error) {
	sub := &db_models.Subscription{UserID: userID, CourseID: courseID, IsSubscribed: true}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"is_subscribed": true,
				"updated_at":    time.Now().Unix(),
			}),
		}).
		Create(sub).Error
	if err != nil {
		return nil, err
	}

	return r.Find(ctx, userID, courseID)
}

func (r *subscriptionRepository) Deactivate(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]any{"is_subscribed": false, "updated_at": time.Now().Unix()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Find(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).
		First(&sub, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID, page utils.Pagination) ([]db_models.Subscription, int64, error) {
	var (
		subs  []db_models.Subscription
		total int64
	)

	query := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&db_models.Subscription{}).
			Where("user_id = ? AND is_subscribed = ?", userID, true)
	}
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().Scopes(paginate(page)).
		Preload("Course").
		Order("created_at ASC, id ASC").
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// ListActiveByCourse returns flagged subscriptions with their users loaded.
func (r *subscriptionRepository) ListActiveByCourse(ctx context.Context, courseID uuid.UUID) ([]db_models.Subscription, error) {
	var subs []db_models.Subscription
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ? AND is_subscribed = ?", courseID, true).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) ActiveCourseIDs(ctx context.Context, userID uuid.UUID, courseIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	active := make(map[uuid.UUID]bool, len(courseIDs))
	if userID == uuid.Nil || len(courseIDs) == 0 {
		return active, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("user_id = ? AND is_subscribed = ? AND course_id IN ?", userID, true, courseIDs).
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		active[id] = true
	}
	return active, nil
}
