package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/repositories"
	"coursehub/internal/services"
	"coursehub/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// ListPayments godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param course query string false "Filter by course ID"
// @Param lesson query string false "Filter by lesson ID"
// @Param owner query string false "Filter by owner ID"
// @Param payment_method query string false "cash or transfer"
// @Param ordering query string false "paid_at or -paid_at"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Router /payments [get]
func (p *PaymentController) ListPayments(c *gin.Context) {
	var query request_models.PaymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	page, ok := pagination(c)
	if !ok {
		return
	}

	filter := repositories.PaymentFilter{
		CourseID: optionalUUID(query.CourseID),
		LessonID: optionalUUID(query.LessonID),
		OwnerID:  optionalUUID(query.OwnerID),
		Method:   optionalMethod(query.PaymentMethod),
		Ordering: repositories.PaymentOrdering(query.Ordering),
	}

	payments, err := p.paymentService.List(c.Request.Context(), access.FromContext(c.Request.Context()), filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payments, "Payments retrieved successfully")
}

// GetPayment godoc
// @Summary Get a payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /payments/{id} [get]
func (p *PaymentController) GetPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	payment, err := p.paymentService.Get(c.Request.Context(), access.FromContext(c.Request.Context()), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payment, "Payment retrieved successfully")
}

// CreatePayment godoc
// @Summary Buy a course or a lesson
// @Description Prices the purchase, opens a checkout session and records the payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentRequest true "Exactly one of course or lesson"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments [post]
func (p *PaymentController) CreatePayment(c *gin.Context) {
	var request request_models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := p.paymentService.Create(c.Request.Context(), access.FromContext(c.Request.Context()), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, payment, "Checkout URL created successfully")
}

// DeletePayment godoc
// @Summary Delete a payment
// @Tags Payments
// @Param id path string true "Payment ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (p *PaymentController) DeletePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := p.paymentService.Delete(c.Request.Context(), access.FromContext(c.Request.Context()), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func optionalMethod(raw string) *db_models.PaymentMethod {
	if raw == "" {
		return nil
	}
	m := db_models.PaymentMethod(raw)
	return &m
}
