package services

import (
	"errors"

	"ssfowa-portal/internal/adapters/persistence/models"
)

// Shared authorization errors
var (
	ErrAdminOnly     = errors.New("admin access required")
	ErrNotAuthorized = errors.New("not authorized")
)

// Actor identifies the authenticated caller of a service operation.
// Services decide what the caller may do from the role carried here, not
// from transport-level state.
type Actor struct {
	UserID uint
	Role   string
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
