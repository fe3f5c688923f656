package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	List(ctx context.Context, page utils.Pagination) ([]db_models.User, int64, error)
	Update(ctx context.Context, user *db_models.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role db_models.UserRole) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *userRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) List(ctx context.Context, page utils.Pagination) ([]db_models.User, int64, error) {
	var (
		users []db_models.User
		total int64
	)

	query := func() *gorm.DB {
		return u.db.WithContext(ctx).Model(&db_models.User{})
	}
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query().Scopes(paginate(page)).Order("created_at ASC, id ASC").Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update writes profile fields only; role and credentials have their own paths.
func (u *userRepository) Update(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).
		Model(user).
		Select("display_name", "avatar", "phone", "country", "updated_at").
		Updates(user).Error
}

func (u *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role db_models.UserRole) error {
	res := u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
