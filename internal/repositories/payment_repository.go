package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

type PaymentOrdering string

const (
	OrderPaidAtAsc  PaymentOrdering = "paid_at"
	OrderPaidAtDesc PaymentOrdering = "-paid_at"
)

// PaymentFilter narrows an already visibility-filtered listing.
type PaymentFilter struct {
	CourseID *uuid.UUID
	LessonID *uuid.UUID
	OwnerID  *uuid.UUID
	Method   *db_models.PaymentMethod
	Ordering PaymentOrdering
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *db_models.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindVisible(ctx context.Context, v access.Visibility, id uuid.UUID) (*db_models.Payment, error)
	ListVisible(ctx context.Context, v access.Visibility, filter PaymentFilter, page utils.Pagination) ([]db_models.Payment, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *db_models.Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&db_models.Payment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *paymentRepository) FindVisible(ctx context.Context, v access.Visibility, id uuid.UUID) (*db_models.Payment, error) {
	var payment db_models.Payment
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(v, access.ResourcePayment)).
		First(&payment, "payments.id = ?", id).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &payment, nil
}

func (r *paymentRepository) ListVisible(ctx context.Context, v access.Visibility, filter PaymentFilter, page utils.Pagination) ([]db_models.Payment, int64, error) {
	var (
		payments []db_models.Payment
		total    int64
	)

	query := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&db_models.Payment{}).
			Scopes(visibleTo(v, access.ResourcePayment), filter.apply)
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().Scopes(paginate(page)).Order(filter.order()).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *paymentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Payment, error) {
	var payments []db_models.Payment
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("paid_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (f PaymentFilter) apply(db *gorm.DB) *gorm.DB {
	if f.CourseID != nil {
		db = db.Where("payments.course_id = ?", *f.CourseID)
	}
	if f.LessonID != nil {
		db = db.Where("payments.lesson_id = ?", *f.LessonID)
	}
	if f.OwnerID != nil {
		db = db.Where("payments.owner_id = ?", *f.OwnerID)
	}
	if f.Method != nil {
		db = db.Where("payments.method = ?", *f.Method)
	}
	return db
}

func (f PaymentFilter) order() string {
	if f.Ordering == OrderPaidAtAsc {
		return "payments.paid_at ASC, payments.id ASC"
	}
	return "payments.paid_at DESC, payments.id DESC"
}
