package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/core/domain"
)

// Request service errors
var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrAmenityNotFound      = errors.New("amenity not found")
	ErrAmenityNotBookable   = errors.New("amenity is not bookable")
	ErrInvalidRequestType   = errors.New("invalid request type")
	ErrInvalidRequestStatus = errors.New("invalid request status")
	ErrBookingConflict      = errors.New("the slot is already booked")
	ErrInvalidBookingSlot   = errors.New("invalid booking slot")
	ErrBookingInPast        = errors.New("booking date must not be in the past")
)

// RequestService handles resident requests and amenity bookings
type RequestService struct {
	requestRepo   *repositories.RequestRepository
	amenityRepo   *repositories.AmenityRepository
	userRepo      repositories.UserRepository
	notifyService *NotificationService
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepo *repositories.RequestRepository,
	amenityRepo *repositories.AmenityRepository,
	userRepo repositories.UserRepository,
	notifyService *NotificationService,
) *RequestService {
	return &RequestService{
		requestRepo:   requestRepo,
		amenityRepo:   amenityRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
	}
}

// CreateRequestInput represents create request input
type CreateRequestInput struct {
	RequestType      string `json:"request_type" validate:"required"`
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description,omitempty"`
	AmenityID        *uint  `json:"amenity_id,omitempty"`
	BookingDate      string `json:"booking_date,omitempty"`
	BookingStartTime string `json:"booking_start_time,omitempty"`
	BookingEndTime   string `json:"booking_end_time,omitempty"`
	VehicleNumber    string `json:"vehicle_number,omitempty"`
	VehicleType      string `json:"vehicle_type,omitempty"`
}

// Create files a new request. Requests that carry an amenity, a date and
// a half-open [start, end) time slot are rejected when the slot overlaps
// any pending or approved booking on the same amenity and date. Admins
// are notified of every new request.
func (s *RequestService) Create(ctx context.Context, actor Actor, input *CreateRequestInput) (*models.Request, error) {
	if !models.ValidRequestType(input.RequestType) {
		return nil, ErrInvalidRequestType
	}
	if input.Title == "" {
		return nil, errors.New("title is required")
	}

	request := &models.Request{
		UserID:        actor.UserID,
		RequestType:   input.RequestType,
		Title:         input.Title,
		Description:   input.Description,
		Status:        models.RequestStatusPending,
		VehicleNumber: input.VehicleNumber,
		VehicleType:   input.VehicleType,
	}

	// A full slot triggers conflict detection whatever the request type;
	// booking-type requests cannot omit one.
	hasSlot := input.AmenityID != nil && input.BookingDate != "" && input.BookingStartTime != "" && input.BookingEndTime != ""
	isBookingType := input.RequestType == models.RequestTypeAmenityBooking || input.RequestType == models.RequestTypeHallBooking
	if isBookingType && !hasSlot {
		return nil, ErrInvalidBookingSlot
	}

	if hasSlot {
		bookingDate, err := time.Parse("2006-01-02", input.BookingDate)
		if err != nil {
			return nil, errors.New("invalid booking date format, use YYYY-MM-DD")
		}
		today := time.Now().Truncate(24 * time.Hour)
		if bookingDate.Before(today) {
			return nil, ErrBookingInPast
		}

		if !validSlotTime(input.BookingStartTime) || !validSlotTime(input.BookingEndTime) {
			return nil, errors.New("invalid time format, use HH:MM")
		}
		// HH:MM strings compare correctly as text
		if input.BookingStartTime >= input.BookingEndTime {
			return nil, ErrInvalidBookingSlot
		}

		amenity, err := s.amenityRepo.GetByID(ctx, *input.AmenityID)
		if err != nil {
			return nil, ErrAmenityNotFound
		}
		if !amenity.IsActive || !amenity.IsBookable {
			return nil, ErrAmenityNotBookable
		}

		request.AmenityID = input.AmenityID
		request.BookingDate = &bookingDate
		request.BookingStartTime = &input.BookingStartTime
		request.BookingEndTime = &input.BookingEndTime

		if err := s.requestRepo.CreateWithConflictCheck(ctx, request); err != nil {
			if errors.Is(err, repositories.ErrBookingConflict) {
				return nil, ErrBookingConflict
			}
			return nil, err
		}
	} else {
		if err := s.requestRepo.Create(ctx, request); err != nil {
			return nil, err
		}
	}

	if s.notifyService != nil {
		user, err := s.userRepo.GetByID(ctx, actor.UserID)
		name := "A resident"
		if err == nil {
			name = user.FullName
		}
		s.notifyService.NotifyAdmins(ctx,
			"New Request",
			fmt.Sprintf("%s filed a %s request: %s", name, request.RequestType, request.Title),
			models.NotifyInfo,
			"/admin/requests")
	}

	return request, nil
}

// SetStatusInput represents set status input
type SetStatusInput struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// SetStatus moves a request to a new status (admin only). The requester
// is notified of every transition except back to pending.
func (s *RequestService) SetStatus(ctx context.Context, actor Actor, requestID uint, input *SetStatusInput) (*models.Request, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if !models.ValidRequestStatus(input.Status) {
		return nil, ErrInvalidRequestStatus
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, input.Status, input.AdminNotes); err != nil {
		return nil, err
	}
	request.Status = input.Status
	if input.AdminNotes != "" {
		request.AdminNotes = input.AdminNotes
	}

	if s.notifyService != nil {
		title, message, notifyType := statusNotification(request)
		if title != "" {
			s.notifyService.Notify(ctx, request.UserID, title, message, notifyType, "/requests")
		}
	}

	return request, nil
}

// statusNotification builds the owner-facing message for a status
// change. Pending produces no notification.
func statusNotification(request *models.Request) (title, message, notifyType string) {
	switch request.Status {
	case models.RequestStatusApproved:
		return "Request Approved", fmt.Sprintf("Your request '%s' has been approved", request.Title), models.NotifySuccess
	case models.RequestStatusRejected:
		return "Request Rejected", fmt.Sprintf("Your request '%s' has been rejected", request.Title), models.NotifyError
	case models.RequestStatusInProgress:
		return "Request In Progress", fmt.Sprintf("Your request '%s' is now in progress", request.Title), models.NotifyInfo
	case models.RequestStatusCompleted:
		return "Request Completed", fmt.Sprintf("Your request '%s' has been completed", request.Title), models.NotifySuccess
	}
	return "", "", ""
}

// ListForUser returns the caller's own requests
func (s *RequestService) ListForUser(ctx context.Context, actor Actor, filter repositories.RequestFilter) ([]*models.Request, int64, error) {
	return s.requestRepo.ListByUser(ctx, actor.UserID, filter)
}

// ListAll returns every request (admin only)
func (s *RequestService) ListAll(ctx context.Context, actor Actor, filter repositories.RequestFilter) ([]*models.Request, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrAdminOnly
	}
	return s.requestRepo.ListAll(ctx, filter)
}

// GetByID returns one request. Admins can read any; other users only
// their own.
func (s *RequestService) GetByID(ctx context.Context, actor Actor, id uint) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && request.UserID != actor.UserID {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

func validSlotTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}
