package services

import (
	"context"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
)

// DashboardService aggregates portal statistics
type DashboardService struct {
	paymentRepo      *repositories.PaymentRepository
	dueRepo          *repositories.DueRepository
	requestRepo      *repositories.RequestRepository
	notificationRepo *repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	paymentRepo *repositories.PaymentRepository,
	dueRepo *repositories.DueRepository,
	requestRepo *repositories.RequestRepository,
	notificationRepo *repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		paymentRepo:      paymentRepo,
		dueRepo:          dueRepo,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// AdminOverview is the association-wide dashboard
type AdminOverview struct {
	Payments           *repositories.PaymentStats `json:"payments"`
	PendingDues        int64                      `json:"pending_dues"`
	PendingRequests    int64                      `json:"pending_requests"`
	InProgressRequests int64                      `json:"in_progress_requests"`
	RecentPayments     []*models.Payment          `json:"recent_payments"`
	RecentRequests     []*models.Request          `json:"recent_requests"`
}

// GetAdminOverview builds the admin dashboard (admin only)
func (s *DashboardService) GetAdminOverview(ctx context.Context, actor Actor) (*AdminOverview, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	stats, err := s.paymentRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	pendingDues, err := s.dueRepo.CountPendingAll(ctx)
	if err != nil {
		return nil, err
	}

	pendingRequests, err := s.requestRepo.CountByStatus(ctx, models.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.requestRepo.CountByStatus(ctx, models.RequestStatusInProgress)
	if err != nil {
		return nil, err
	}

	recentPayments, _, err := s.paymentRepo.ListAll(ctx, repositories.PaymentFilter{Limit: 5})
	if err != nil {
		return nil, err
	}
	recentRequests, _, err := s.requestRepo.ListAll(ctx, repositories.RequestFilter{Limit: 5})
	if err != nil {
		return nil, err
	}

	return &AdminOverview{
		Payments:           stats,
		PendingDues:        pendingDues,
		PendingRequests:    pendingRequests,
		InProgressRequests: inProgress,
		RecentPayments:     recentPayments,
		RecentRequests:     recentRequests,
	}, nil
}

// ResidentOverview is the per-user dashboard
type ResidentOverview struct {
	UnpaidDues          int64                    `json:"unpaid_dues"`
	Dues                []*models.MaintenanceDue `json:"dues"`
	RecentRequests      []*models.Request        `json:"recent_requests"`
	UnreadNotifications int64                    `json:"unread_notifications"`
}

// GetResidentOverview builds the caller's own dashboard
func (s *DashboardService) GetResidentOverview(ctx context.Context, actor Actor) (*ResidentOverview, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	overview := &ResidentOverview{
		Dues: []*models.MaintenanceDue{},
	}

	if user.HasFlat() {
		dues, err := s.dueRepo.ListByFlat(ctx, user.FlatNumber, user.Block)
		if err != nil {
			return nil, err
		}
		overview.Dues = dues
		unpaid, err := s.dueRepo.CountUnpaid(ctx, user.FlatNumber, user.Block)
		if err != nil {
			return nil, err
		}
		overview.UnpaidDues = unpaid
	}

	requests, _, err := s.requestRepo.ListByUser(ctx, actor.UserID, repositories.RequestFilter{Limit: 5})
	if err != nil {
		return nil, err
	}
	overview.RecentRequests = requests

	unread, err := s.notificationRepo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	overview.UnreadNotifications = unread

	return overview, nil
}
