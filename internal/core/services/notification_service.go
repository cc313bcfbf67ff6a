package services

import (
	"context"
	"errors"
	"log"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
)

// Notification service errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService handles in-app notification fan-out and inboxes
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Notify delivers a notification to a single user. Delivery is best
// effort: failures are logged and never propagated to the caller, so a
// notification problem cannot roll back the action that triggered it.
func (s *NotificationService) Notify(ctx context.Context, userID uint, title, message, notifyType, link string) {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifyType,
		Link:    link,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("⚠️ Failed to notify user %d: %v", userID, err)
	}
}

// NotifyAdmins fans a notification out to every active admin. Each
// delivery is independent: one failure does not stop the rest.
func (s *NotificationService) NotifyAdmins(ctx context.Context, title, message, notifyType, link string) {
	adminIDs, err := s.userRepo.ListIDsByRole(ctx, models.RoleAdmin)
	if err != nil {
		log.Printf("⚠️ Failed to list admins for notification: %v", err)
		return
	}
	for _, id := range adminIDs {
		s.Notify(ctx, id, title, message, notifyType, link)
	}
}

// NotifyAllActive fans a notification out to every active user
func (s *NotificationService) NotifyAllActive(ctx context.Context, title, message, notifyType, link string) {
	userIDs, err := s.userRepo.ListActiveIDs(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to list users for notification: %v", err)
		return
	}
	for _, id := range userIDs {
		s.Notify(ctx, id, title, message, notifyType, link)
	}
}

// ListInbox returns a user's notifications, newest first
func (s *NotificationService) ListInbox(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]*models.Notification, int64, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead marks one of the user's notifications read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	affected, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
