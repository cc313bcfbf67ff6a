package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/config"
	"ssfowa-portal/internal/core/services"
	"ssfowa-portal/internal/pkg/pagination"
	"ssfowa-portal/internal/pkg/response"
)

// PaymentHandler handles payment and dues endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
	cfg            *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, cfg: cfg}
}

// InitiatePaymentRequest represents initiate payment request body
type InitiatePaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"payment_type"`
	Description string  `json:"description"`
	Month       *int    `json:"month"`
	Year        *int    `json:"year"`
}

// ConfirmPaymentRequest represents confirm payment request body
type ConfirmPaymentRequest struct {
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
}

// GenerateDuesRequest represents generate dues request body
type GenerateDuesRequest struct {
	Amount  float64 `json:"amount"`
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	DueDate string  `json:"due_date"`
}

// Initiate starts a payment and opens a gateway order
// @Summary Initiate payment
// @Description Create a pending payment and a gateway order for it
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body InitiatePaymentRequest true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/initiate [post]
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than zero")
	}
	if req.PaymentType == "" {
		return response.BadRequest(c, "Payment type is required")
	}

	input := &services.InitiatePaymentInput{
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
	}

	result, err := h.paymentService.Initiate(c.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than zero")
		case errors.Is(err, services.ErrInvalidPaymentType):
			return response.BadRequest(c, "Invalid payment type")
		case errors.Is(err, services.ErrInvalidPeriod):
			return response.BadRequest(c, "Month and year must be provided together")
		case errors.Is(err, services.ErrInvalidMonth):
			return response.BadRequest(c, "Month must be between 1 and 12")
		default:
			return response.InternalServerError(c, "Failed to initiate payment")
		}
	}

	return response.Created(c, "Payment initiated successfully", fiber.Map{
		"payment": result.Payment,
		"order":   result.Order,
	})
}

// Confirm settles a pending payment
// @Summary Confirm payment
// @Description Confirm a pending payment with the gateway payment id
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body ConfirmPaymentRequest true "Gateway confirmation"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments/{id}/confirm [post]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	paymentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var req ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.ConfirmPaymentInput{
		GatewayPaymentID: req.GatewayPaymentID,
		GatewayOrderID:   req.GatewayOrderID,
	}

	payment, err := h.paymentService.Confirm(c.Context(), actor, uint(paymentID), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrPaymentAlreadyCompleted):
			return response.Conflict(c, "Payment already completed")
		case errors.Is(err, services.ErrGatewayMismatch):
			return response.BadRequest(c, "Gateway order does not match payment")
		default:
			return response.InternalServerError(c, "Failed to confirm payment")
		}
	}

	return response.Success(c, "Payment confirmed successfully", fiber.Map{
		"payment": payment,
	})
}

// ListMine lists the caller's payments
// @Summary List own payments
// @Description Get the caller's payment history
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by payment type"
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	filter := repositories.PaymentFilter{
		Status:      c.Query("status"),
		PaymentType: c.Query("type"),
		Offset:      params.Offset,
		Limit:       params.Limit,
	}

	payments, total, err := h.paymentService.ListForUser(c.Context(), actor, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", pagination.NewResponse(payments, params, total))
}

// ListMyDues lists the caller's maintenance dues
// @Summary List own dues
// @Description Get the caller's maintenance dues, newest period first
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /payments/dues [get]
func (h *PaymentHandler) ListMyDues(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	dues, err := h.paymentService.ListDuesForUser(c.Context(), actor)
	if err != nil {
		return response.InternalServerError(c, "Failed to list dues")
	}

	return response.Success(c, "Dues retrieved successfully", fiber.Map{
		"dues": dues,
	})
}

// Get returns a single payment
// @Summary Get payment
// @Description Get a payment by ID
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	paymentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.paymentService.GetByID(c.Context(), actor, uint(paymentID))
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to get payment")
	}

	return response.Success(c, "Payment retrieved successfully", fiber.Map{
		"payment": payment,
	})
}

// ListAll lists every payment with ledger stats
// @Summary List all payments
// @Description Get the full payment ledger with stats (Admin only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by payment type"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/payments [get]
func (h *PaymentHandler) ListAll(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	filter := repositories.PaymentFilter{
		Status:      c.Query("status"),
		PaymentType: c.Query("type"),
		Offset:      params.Offset,
		Limit:       params.Limit,
	}

	result, err := h.paymentService.ListAll(c.Context(), actor, filter)
	if err != nil {
		if errors.Is(err, services.ErrAdminOnly) {
			return response.Forbidden(c, "Admin access required")
		}
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", fiber.Map{
		"payments": pagination.NewResponse(result.Payments, params, result.Total),
		"stats":    result.Stats,
	})
}

// GenerateDues creates pending dues for a billing period
// @Summary Generate dues
// @Description Create one pending due per occupied flat for a period (Admin only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateDuesRequest true "Billing period"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dues/generate [post]
func (h *PaymentHandler) GenerateDues(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req GenerateDuesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Fall back to the association's standard monthly amount
	if req.Amount == 0 {
		req.Amount = h.cfg.Dues.DefaultAmount
	}

	input := &services.GenerateDuesInput{
		Amount:  req.Amount,
		Month:   req.Month,
		Year:    req.Year,
		DueDate: req.DueDate,
	}

	result, err := h.paymentService.GenerateDues(c.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminOnly):
			return response.Forbidden(c, "Admin access required")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be greater than zero")
		case errors.Is(err, services.ErrInvalidMonth):
			return response.BadRequest(c, "Month must be between 1 and 12")
		case errors.Is(err, services.ErrInvalidYear):
			return response.BadRequest(c, "Invalid year")
		default:
			return response.InternalServerError(c, "Failed to generate dues")
		}
	}

	return response.Success(c, "Dues generated successfully", result)
}

// ListDuesByPeriod lists dues for a billing period
// @Summary List dues by period
// @Description Get every due for a month and year (Admin only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dues [get]
func (h *PaymentHandler) ListDuesByPeriod(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	dues, err := h.paymentService.ListDuesByPeriod(c.Context(), actor, month, year)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminOnly):
			return response.Forbidden(c, "Admin access required")
		case errors.Is(err, services.ErrInvalidMonth):
			return response.BadRequest(c, "Month must be between 1 and 12")
		default:
			return response.InternalServerError(c, "Failed to list dues")
		}
	}

	return response.Success(c, "Dues retrieved successfully", fiber.Map{
		"dues": dues,
	})
}
