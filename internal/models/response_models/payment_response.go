package response_models

import (
	"github.com/google/uuid"

	"coursehub/internal/models/db_models"
)

// PaymentResponse carries Price and CheckoutURL only on creation.
type PaymentResponse struct {
	ID          uuid.UUID               `json:"id"`
	CourseID    *uuid.UUID              `json:"course"`
	LessonID    *uuid.UUID              `json:"lesson"`
	OwnerID     *uuid.UUID              `json:"owner"`
	PaidAt      int64                   `json:"paid_at"`
	Amount      int64                   `json:"amount"`
	Method      db_models.PaymentMethod `json:"payment_method"`
	Price       *int64                  `json:"price,omitempty"`
	CheckoutURL string                  `json:"checkout_url,omitempty"`
}

func NewPaymentResponse(p *db_models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:       p.ID,
		CourseID: p.CourseID,
		LessonID: p.LessonID,
		OwnerID:  p.OwnerID,
		PaidAt:   p.PaidAt,
		Amount:   p.Amount,
		Method:   p.Method,
	}
}

func NewPaymentResponses(payments []db_models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentResponse(&payments[i]))
	}
	return out
}
