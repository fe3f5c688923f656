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

type UserServiceInterface interface {
	// List returns public shapes, except the caller's own row.
	List(ctx context.Context, actor access.Actor, page utils.Pagination) (*response_models.PageResponse[any], error)
	Get(ctx context.Context, actor access.Actor, id uuid.UUID) (any, error)
	UpdateProfile(ctx context.Context, actor access.Actor, id uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.UserPrivateResponse, error)
	AssignRole(ctx context.Context, actor access.Actor, id uuid.UUID, role db_models.UserRole) (*response_models.UserPublicResponse, error)
}

type UserService struct {
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
	logger      zerolog.Logger
}

func NewUserService(userRepo repositories.UserRepository, paymentRepo repositories.PaymentRepository, logger zerolog.Logger) UserServiceInterface {
	return &UserService{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		logger:      logger.With().Str("service", "user").Logger(),
	}
}

func (s *UserService) List(ctx context.Context, actor access.Actor, page utils.Pagination) (*response_models.PageResponse[any], error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	items := make([]any, 0, len(users))
	for i := range users {
		if users[i].ID == actor.ID() {
			items = append(items, response_models.NewUserPrivateResponse(&users[i]))
			continue
		}
		items = append(items, response_models.NewUserPublicResponse(&users[i]))
	}
	return response_models.NewPage(items, page.Page, page.PageSize, total), nil
}

// Get returns the private shape with payment history to the user themself.
func (s *UserService) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (any, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ID != actor.ID() {
		return response_models.NewUserPublicResponse(user), nil
	}

	payments, err := s.paymentRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := response_models.NewUserPrivateResponse(user)
	resp.Payments = response_models.NewPaymentResponses(payments)
	return resp, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor access.Actor, id uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.UserPrivateResponse, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID != actor.ID() {
		return nil, utils.Denied("You can only edit your own profile!")
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Country != nil {
		user.Country = req.Country
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := response_models.NewUserPrivateResponse(user)
	return &resp, nil
}

func (s *UserService) AssignRole(ctx context.Context, actor access.Actor, id uuid.UUID, role db_models.UserRole) (*response_models.UserPublicResponse, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if !access.IsModerator(actor) {
		return nil, utils.Denied("Only moderators can assign roles!")
	}
	if !role.Valid() {
		return nil, utils.ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", id.String()).
		Str("actor_id", actor.String()).
		Str("role", string(role)).
		Msg("role assigned")

	resp := response_models.NewUserPublicResponse(user)
	return &resp, nil
}

func (s *UserService) find(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrNotFound
	}
	return user, nil
}
