package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/core/domain"
	"ssfowa-portal/internal/pkg/receipt"
)

// Payment service errors
var (
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentAlreadyCompleted = errors.New("payment already completed")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInvalidPaymentType      = errors.New("invalid payment type")
	ErrInvalidPeriod           = errors.New("month and year must be provided together")
	ErrInvalidMonth            = errors.New("month must be between 1 and 12")
	ErrInvalidYear             = errors.New("invalid year")
	ErrGatewayMismatch         = errors.New("gateway order does not match payment")
)

// PaymentService handles the dues ledger and payment lifecycle
type PaymentService struct {
	paymentRepo   *repositories.PaymentRepository
	dueRepo       *repositories.DueRepository
	userRepo      repositories.UserRepository
	notifyService *NotificationService
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo *repositories.PaymentRepository,
	dueRepo *repositories.DueRepository,
	userRepo repositories.UserRepository,
	notifyService *NotificationService,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		dueRepo:       dueRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
	}
}

// GenerateDuesInput represents generate dues input
type GenerateDuesInput struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Month   int     `json:"month" validate:"required,min=1,max=12"`
	Year    int     `json:"year" validate:"required"`
	DueDate string  `json:"due_date,omitempty"`
}

// GenerateDuesOutput represents generate dues output
type GenerateDuesOutput struct {
	Created int `json:"created"`
	Flats   int `json:"flats"`
	Month   int `json:"month"`
	Year    int `json:"year"`
}

// GenerateDues creates one pending due per occupied flat for a billing
// period. Re-running for the same period is safe: flats already billed
// are skipped and only newly created dues are counted.
func (s *PaymentService) GenerateDues(ctx context.Context, actor Actor, input *GenerateDuesInput) (*GenerateDuesOutput, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, ErrInvalidMonth
	}
	if input.Year < 2000 || input.Year > 2100 {
		return nil, ErrInvalidYear
	}

	dueDate := time.Date(input.Year, time.Month(input.Month), 10, 0, 0, 0, 0, time.UTC)
	if input.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return nil, errors.New("invalid due date format, use YYYY-MM-DD")
		}
		dueDate = parsed
	}

	flats, err := s.userRepo.ListDistinctFlats(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.dueRepo.GenerateForPeriod(ctx, flats, input.Amount, input.Month, input.Year, dueDate)
	if err != nil {
		return nil, err
	}

	return &GenerateDuesOutput{
		Created: created,
		Flats:   len(flats),
		Month:   input.Month,
		Year:    input.Year,
	}, nil
}

// InitiatePaymentInput represents initiate payment input
type InitiatePaymentInput struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentType string  `json:"payment_type" validate:"required"`
	Description string  `json:"description,omitempty"`
	Month       *int    `json:"month,omitempty"`
	Year        *int    `json:"year,omitempty"`
}

// InitiatePaymentOutput represents initiate payment output
type InitiatePaymentOutput struct {
	Payment *models.Payment      `json:"payment"`
	Order   *models.GatewayOrder `json:"order"`
}

// Initiate records a pending payment and opens a gateway order for it.
// A maintenance payment may carry a (month, year) period so confirmation
// can settle the matching due; both parts of the period are required if
// either is given.
func (s *PaymentService) Initiate(ctx context.Context, actor Actor, input *InitiatePaymentInput) (*InitiatePaymentOutput, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.ValidPaymentType(input.PaymentType) {
		return nil, ErrInvalidPaymentType
	}
	if (input.Month == nil) != (input.Year == nil) {
		return nil, ErrInvalidPeriod
	}
	if input.Month != nil && (*input.Month < 1 || *input.Month > 12) {
		return nil, ErrInvalidMonth
	}

	payment := &models.Payment{
		UserID:         actor.UserID,
		Amount:         input.Amount,
		PaymentType:    input.PaymentType,
		Description:    input.Description,
		Status:         models.PaymentStatusPending,
		ReceiptNumber:  receipt.NewNumber(),
		GatewayOrderID: receipt.NewOrderRef(),
		Month:          input.Month,
		Year:           input.Year,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	order := &models.GatewayOrder{
		ID:       payment.GatewayOrderID,
		Amount:   int64(input.Amount * 100),
		Currency: "INR",
		Receipt:  payment.ReceiptNumber,
	}

	return &InitiatePaymentOutput{Payment: payment, Order: order}, nil
}

// ConfirmPaymentInput represents confirm payment input
type ConfirmPaymentInput struct {
	GatewayPaymentID string `json:"gateway_payment_id,omitempty"`
	GatewayOrderID   string `json:"gateway_order_id,omitempty"`
}

// Confirm settles a pending payment of the caller. The payment flips to
// completed and the due matching the caller's flat and the payment's
// period is marked paid, both in one transaction. Confirming the same
// payment twice fails with ErrPaymentAlreadyCompleted.
func (s *PaymentService) Confirm(ctx context.Context, actor Actor, paymentID uint, input *ConfirmPaymentInput) (*models.Payment, error) {
	// The gateway reference is optional; offline confirmations get a
	// placeholder so the settlement record is never blank.
	gatewayPaymentID := input.GatewayPaymentID
	if gatewayPaymentID == "" {
		gatewayPaymentID = "demo_payment"
	}

	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if input.GatewayOrderID != "" {
		existing, err := s.paymentRepo.GetByIDForUser(ctx, paymentID, actor.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ErrPaymentNotFound
			}
			return nil, err
		}
		if existing.GatewayOrderID != input.GatewayOrderID {
			return nil, ErrGatewayMismatch
		}
	}

	payment, err := s.paymentRepo.ConfirmWithDue(ctx, paymentID, actor.UserID, gatewayPaymentID, user.FlatNumber, user.Block)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, ErrPaymentNotFound
		case errors.Is(err, repositories.ErrPaymentAlreadyCompleted):
			return nil, ErrPaymentAlreadyCompleted
		}
		return nil, err
	}

	// Fan-out happens after the transaction commits and never fails the
	// confirmation.
	if s.notifyService != nil {
		s.notifyService.NotifyAdmins(ctx,
			"Payment Received",
			fmt.Sprintf("%s paid ₹%.2f (%s), receipt %s", user.FullName, payment.Amount, payment.PaymentType, payment.ReceiptNumber),
			models.NotifyPayment,
			"/admin/payments")
		s.notifyService.Notify(ctx, actor.UserID,
			"Payment Successful",
			fmt.Sprintf("Your payment of ₹%.2f was received. Receipt: %s", payment.Amount, payment.ReceiptNumber),
			models.NotifySuccess,
			"/payments")
	}

	return payment, nil
}

// ListDuesForUser returns the caller's outstanding dues, newest period
// first. A user without a flat assignment has no dues and gets an empty
// list, not an error.
func (s *PaymentService) ListDuesForUser(ctx context.Context, actor Actor) ([]*models.MaintenanceDue, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !user.HasFlat() {
		return []*models.MaintenanceDue{}, nil
	}
	return s.dueRepo.ListUnpaidByFlat(ctx, user.FlatNumber, user.Block)
}

// ListDuesByPeriod returns every due for a billing period (admin only)
func (s *PaymentService) ListDuesByPeriod(ctx context.Context, actor Actor, month, year int) ([]*models.MaintenanceDue, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	return s.dueRepo.ListByPeriod(ctx, month, year)
}

// ListForUser returns the caller's own payments
func (s *PaymentService) ListForUser(ctx context.Context, actor Actor, filter repositories.PaymentFilter) ([]*models.Payment, int64, error) {
	return s.paymentRepo.ListByUser(ctx, actor.UserID, filter)
}

// ListAllOutput bundles the full ledger with its summary stats
type ListAllOutput struct {
	Payments []*models.Payment          `json:"payments"`
	Total    int64                      `json:"total"`
	Stats    *repositories.PaymentStats `json:"stats"`
}

// ListAll returns every payment plus ledger stats (admin only)
func (s *PaymentService) ListAll(ctx context.Context, actor Actor, filter repositories.PaymentFilter) (*ListAllOutput, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	payments, total, err := s.paymentRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.paymentRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	return &ListAllOutput{Payments: payments, Total: total, Stats: stats}, nil
}

// GetByID returns a single payment. Admins can read any payment; other
// users only their own.
func (s *PaymentService) GetByID(ctx context.Context, actor Actor, id uint) (*models.Payment, error) {
	var payment *models.Payment
	var err error
	if actor.IsAdmin() {
		payment, err = s.paymentRepo.GetByID(ctx, id)
	} else {
		payment, err = s.paymentRepo.GetByIDForUser(ctx, id, actor.UserID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}
