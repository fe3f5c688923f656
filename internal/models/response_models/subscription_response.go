package response_models

import (
	"github.com/google/uuid"

	"coursehub/internal/models/db_models"
)

type SubscriptionResponse struct {
	ID           uuid.UUID `json:"id"`
	CourseID     uuid.UUID `json:"course"`
	CourseName   string    `json:"course_name,omitempty"`
	IsSubscribed bool      `json:"is_subscribed"`
	CreatedAt    int64     `json:"created_at"`
}

func NewSubscriptionResponse(s *db_models.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:           s.ID,
		CourseID:     s.CourseID,
		IsSubscribed: s.IsSubscribed,
		CreatedAt:    s.CreatedAt,
	}
	if s.Course != nil {
		resp.CourseName = s.Course.Name
	}
	return resp
}
