// Package gateway turns a pending payment into an external checkout link.
package gateway

import (
	"context"

	"coursehub/internal/models/db_models"
	"coursehub/pkg/utils"
)

// PriceHandle identifies a price registered with the payment provider.
type PriceHandle struct {
	Provider string `json:"provider"`
	PriceID  string `json:"price_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentGateway interface {
	// CreatePrice registers the resolved price of the payment's loaded Course
	// or Lesson with the provider.
	CreatePrice(ctx context.Context, payment *db_models.Payment) (PriceHandle, error)
	CreateCheckoutURL(ctx context.Context, handle PriceHandle) (string, error)
}

func productName(payment *db_models.Payment) string {
	switch {
	case payment.Lesson != nil && payment.Lesson.Name != "":
		return payment.Lesson.Name
	case payment.Course != nil && payment.Course.Name != "":
		return payment.Course.Name
	case payment.LessonID != nil:
		return "Lesson " + payment.LessonID.String()
	case payment.CourseID != nil:
		return "Course " + payment.CourseID.String()
	default:
		return "Purchase"
	}
}

// ResolvePrice returns the stored price of the single purchased course or lesson.
// The target must be loaded on the payment.
func ResolvePrice(payment *db_models.Payment) (int64, error) {
	hasCourse := payment.CourseID != nil || payment.Course != nil
	hasLesson := payment.LessonID != nil || payment.Lesson != nil

	switch {
	case hasCourse && hasLesson:
		return 0, utils.ErrAmbiguousPurchase
	case hasCourse:
		if payment.Course == nil {
			return 0, utils.ErrNotFound
		}
		return payment.Course.Price, nil
	case hasLesson:
		if payment.Lesson == nil {
			return 0, utils.ErrNotFound
		}
		return payment.Lesson.Price, nil
	default:
		return 0, utils.ErrNothingToCharge
	}
}
