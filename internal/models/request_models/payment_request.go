package request_models

import "github.com/google/uuid"

// CreatePaymentRequest must name exactly one of course or lesson.
type CreatePaymentRequest struct {
	CourseID *uuid.UUID `json:"course"`
	LessonID *uuid.UUID `json:"lesson"`
	Amount   *int64     `json:"amount" binding:"omitempty,gte=0"`
	Method   string     `json:"payment_method" binding:"omitempty,oneof=cash transfer"`
	Owner    *uuid.UUID `json:"owner"`
}

type PaymentListQuery struct {
	CourseID      string `form:"course" binding:"omitempty,uuid"`
	LessonID      string `form:"lesson" binding:"omitempty,uuid"`
	OwnerID       string `form:"owner" binding:"omitempty,uuid"`
	PaymentMethod string `form:"payment_method" binding:"omitempty,oneof=cash transfer"`
	Ordering      string `form:"ordering" binding:"omitempty,oneof=paid_at -paid_at"`
}
