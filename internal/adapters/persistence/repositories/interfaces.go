package repositories

import (
	"context"
	"errors"

	"ssfowa-portal/internal/adapters/persistence/models"
)

// Errors surfaced by compound repository operations
var (
	// ErrPaymentAlreadyCompleted is returned when confirming a payment
	// that has already settled.
	ErrPaymentAlreadyCompleted = errors.New("payment already completed")

	// ErrBookingConflict is returned when a booking overlaps an existing
	// pending or approved booking for the same amenity and date.
	ErrBookingConflict = errors.New("booking slot already taken")
)

// FlatAssignment is a distinct (flat_number, block) pair owned by a
// resident; the unit dues are billed against.
type FlatAssignment struct {
	FlatNumber string `json:"flat_number"`
	Block      string `json:"block"`
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, role, search string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListDistinctFlats(ctx context.Context) ([]FlatAssignment, error)
	ListIDsByRole(ctx context.Context, role string) ([]uint, error)
	ListActiveIDs(ctx context.Context) ([]uint, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
