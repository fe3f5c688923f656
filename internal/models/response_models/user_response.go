package response_models

import (
	"github.com/google/uuid"

	"coursehub/internal/models/db_models"
)

// UserPublicResponse is what other users may see.
type UserPublicResponse struct {
	ID          uuid.UUID          `json:"id"`
	DisplayName string             `json:"display_name"`
	Role        db_models.UserRole `json:"role"`
	Avatar      *string            `json:"avatar"`
}

type UserPrivateResponse struct {
	ID          uuid.UUID          `json:"id"`
	Email       string             `json:"email"`
	DisplayName string             `json:"display_name"`
	Role        db_models.UserRole `json:"role"`
	Avatar      *string            `json:"avatar"`
	Phone       *string            `json:"phone"`
	Country     *string            `json:"country"`
	CreatedAt   int64              `json:"created_at"`
	Payments    []PaymentResponse  `json:"payments,omitempty"`
}

func NewUserPublicResponse(u *db_models.User) UserPublicResponse {
	return UserPublicResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Avatar:      u.Avatar,
	}
}

func NewUserPrivateResponse(u *db_models.User) UserPrivateResponse {
	return UserPrivateResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Avatar:      u.Avatar,
		Phone:       u.Phone,
		Country:     u.Country,
		CreatedAt:   u.CreatedAt,
	}
}
