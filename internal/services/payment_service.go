package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coursehub/internal/access"
	"coursehub/internal/gateway"
	"coursehub/internal/metrics"
	dbm "coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/models/response_models"
	"coursehub/internal/repositories"
	"coursehub/pkg/utils"
)

type PaymentService interface {
	List(ctx context.Context, actor access.Actor, filter repositories.PaymentFilter, page utils.Pagination) (*response_models.PageResponse[response_models.PaymentResponse], error)
	Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*response_models.PaymentResponse, error)
	Create(ctx context.Context, actor access.Actor, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error)
	Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	courseRepo  repositories.CourseRepository
	lessonRepo  repositories.LessonRepository
	gateway     gateway.PaymentGateway
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	courseRepo repositories.CourseRepository,
	lessonRepo repositories.LessonRepository,
	gw gateway.PaymentGateway,
	m *metrics.Metrics,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		courseRepo:  courseRepo,
		lessonRepo:  lessonRepo,
		gateway:     gw,
		metrics:     m,
		logger:      logger.With().Str("service", "payment").Logger(),
		now:         time.Now,
	}
}

func (p *paymentService) List(ctx context.Context, actor access.Actor, filter repositories.PaymentFilter, page utils.Pagination) (*response_models.PageResponse[response_models.PaymentResponse], error) {
	payments, total, err := p.paymentRepo.ListVisible(ctx, access.VisibilityFor(actor), filter, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return response_models.NewPage(response_models.NewPaymentResponses(payments), page.Page, page.PageSize, total), nil
}

func (p *paymentService) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*response_models.PaymentResponse, error) {
	payment, err := p.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewPaymentResponse(payment)
	return &resp, nil
}

// Create resolves the price of the purchased course or lesson, obtains a checkout
// URL and only then stores the payment. A gateway failure leaves no row behind.
func (p *paymentService) Create(ctx context.Context, actor access.Actor, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error) {
	if err := access.AuthorizeCreate(actor, access.ResourcePayment); err != nil {
		return nil, err
	}

	switch {
	case req.CourseID == nil && req.LessonID == nil:
		return nil, utils.ErrNothingToCharge
	case req.CourseID != nil && req.LessonID != nil:
		return nil, utils.ErrAmbiguousPurchase
	}

	method := dbm.PaymentMethodTransfer
	if req.Method != "" {
		method = dbm.PaymentMethod(req.Method)
		if !method.Valid() {
			return nil, utils.ErrInvalidMethod
		}
	}

	ownerID := actor.ID()
	payment := &dbm.Payment{
		CourseID: req.CourseID,
		LessonID: req.LessonID,
		OwnerID:  &ownerID,
		PaidAt:   p.now().Unix(),
		Method:   method,
	}
	payment.ID = uuid.New()

	if err := p.loadTarget(ctx, payment); err != nil {
		return nil, err
	}

	price, err := gateway.ResolvePrice(payment)
	if err != nil {
		return nil, err
	}

	payment.Amount = price
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, utils.ErrInvalidAmount
		}
		payment.Amount = *req.Amount
	}

	checkoutURL, handle, err := p.checkout(ctx, payment)
	if err != nil {
		return nil, err
	}

	payment.Provider = handle.Provider
	if meta, err := providerMetadata(handle); err != nil {
		p.logger.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to encode provider metadata")
	} else {
		payment.ProviderMetadata = meta
	}

	// Associations were loaded for pricing only.
	payment.Course, payment.Lesson = nil, nil
	if err := p.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	p.metrics.PaymentsCreated.WithLabelValues(targetLabel(payment)).Inc()
	p.logger.Info().
		Str("payment_id", payment.ID.String()).
		Str("actor_id", actor.String()).
		Int64("amount", payment.Amount).
		Msg("payment created")

	resp := response_models.NewPaymentResponse(payment)
	resp.Price = &price
	resp.CheckoutURL = checkoutURL
	return &resp, nil
}

func (p *paymentService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	if err := access.AuthorizeDelete(actor, access.ResourcePayment); err != nil {
		return err
	}

	payment, err := p.findVisible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := access.RequireOwnership(access.ResourcePayment, access.CanModifyPayment(actor, payment)); err != nil {
		return err
	}

	if err := p.paymentRepo.Delete(ctx, payment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	p.logger.Info().Str("payment_id", payment.ID.String()).Str("actor_id", actor.String()).Msg("payment deleted")
	return nil
}

// loadTarget attaches the purchased course or lesson. Any existing course or
// lesson can be bought, so the lookup is not visibility filtered.
func (p *paymentService) loadTarget(ctx context.Context, payment *dbm.Payment) error {
	if payment.CourseID != nil {
		course, err := p.courseRepo.FindById(ctx, *payment.CourseID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if course == nil {
			return utils.ErrNotFound
		}
		payment.Course = course
	}

	if payment.LessonID != nil {
		lesson, err := p.lessonRepo.FindById(ctx, *payment.LessonID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if lesson == nil {
			return utils.ErrNotFound
		}
		payment.Lesson = lesson
	}
	return nil
}

func (p *paymentService) checkout(ctx context.Context, payment *dbm.Payment) (string, gateway.PriceHandle, error) {
	start := p.now()
	defer func() {
		p.metrics.GatewayDuration.Observe(time.Since(start).Seconds())
	}()

	handle, err := p.gateway.CreatePrice(ctx, payment)
	if err != nil {
		p.metrics.GatewayErrors.WithLabelValues("create_price").Inc()
		return "", gateway.PriceHandle{}, fmt.Errorf("%w: create price: %v", utils.ErrGatewayFailure, err)
	}

	checkoutURL, err := p.gateway.CreateCheckoutURL(ctx, handle)
	if err != nil {
		p.metrics.GatewayErrors.WithLabelValues("create_checkout_url").Inc()
		return "", gateway.PriceHandle{}, fmt.Errorf("%w: create checkout url: %v", utils.ErrGatewayFailure, err)
	}
	if checkoutURL == "" {
		p.metrics.GatewayErrors.WithLabelValues("create_checkout_url").Inc()
		return "", gateway.PriceHandle{}, fmt.Errorf("%w: empty checkout url", utils.ErrGatewayFailure)
	}

	return checkoutURL, handle, nil
}

func (p *paymentService) findVisible(ctx context.Context, actor access.Actor, id uuid.UUID) (*dbm.Payment, error) {
	payment, err := p.paymentRepo.FindVisible(ctx, access.VisibilityFor(actor), id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if payment == nil {
		return nil, utils.ErrNotFound
	}
	return payment, nil
}

func targetLabel(payment *dbm.Payment) string {
	if payment.LessonID != nil {
		return "lesson"
	}
	return "course"
}

func providerMetadata(handle any) (datatypes.JSON, error) {
	meta, err := json.Marshal(handle)
	if err != nil {
		return nil, fmt.Errorf("encode provider metadata: %w", err)
	}
	return datatypes.JSON(meta), nil
}
