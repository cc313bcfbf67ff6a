package services

import (
	"context"
	"testing"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/config"
	"ssfowa-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterInput{
		Email:      "resident@test.com",
		Password:   "secret123",
		FullName:   "New Resident",
		FlatNumber: "C-303",
		Block:      "C",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Duplicate email
	_, err = svc.Register(ctx, &RegisterInput{
		Email:    "resident@test.com",
		Password: "secret123",
		FullName: "Impostor",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Short password
	_, err = svc.Register(ctx, &RegisterInput{
		Email:    "short@test.com",
		Password: "short",
		FullName: "Short",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	// Self-registration cannot claim the admin role
	_, err = svc.Register(ctx, &RegisterInput{
		Email:    "boss@test.com",
		Password: "secret123",
		FullName: "Boss",
		Role:     models.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		Email:    "resident@test.com",
		Password: "secret123",
		FullName: "Resident",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &LoginInput{Email: "resident@test.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "resident@test.com", resp.User.Email)

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleMember, claims.Role)

	_, err = svc.Login(ctx, &LoginInput{Email: "resident@test.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reports the same error as a wrong password
	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@test.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterInput{
		Email:    "resident@test.com",
		Password: "secret123",
		FullName: "Resident",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false).Error)

	_, err = svc.Login(ctx, &LoginInput{Email: "resident@test.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Email:    "resident@test.com",
		Password: "secret123",
		FullName: "Resident",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token was rotated out and cannot be replayed
	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The new one still works
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, "garbage.token.value")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Email:    "resident@test.com",
		Password: "secret123",
		FullName: "Resident",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutAll(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Email:    "resident@test.com",
		Password: "secret123",
		FullName: "Resident",
	})
	require.NoError(t, err)

	// A second session
	session2, err := svc.Login(ctx, &LoginInput{Email: "resident@test.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, registered.User.ID))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.RefreshToken(ctx, session2.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
