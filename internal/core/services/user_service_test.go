package services

import (
	"context"
	"testing"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	createUser(t, db, "owner1@test.com", models.RoleMember, "A-101", "A")
	createUser(t, db, "owner2@test.com", models.RoleMember, "B-202", "B")
	createUser(t, db, "tenant@test.com", models.RoleTenant, "A-101", "A")

	adminActor := Actor{UserID: admin.ID, Role: admin.Role}

	out, err := svc.ListUsers(ctx, adminActor, &ListUsersInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Total)

	out, err = svc.ListUsers(ctx, adminActor, &ListUsersInput{Page: 1, Limit: 10, Role: models.RoleMember})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)

	out, err = svc.ListUsers(ctx, adminActor, &ListUsersInput{Page: 1, Limit: 10, Search: "A-101"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)

	_, err = svc.ListUsers(ctx, Actor{UserID: 2, Role: models.RoleMember}, &ListUsersInput{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, ErrAdminOnly)
}

func TestUpdateUserByAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	adminActor := Actor{UserID: admin.ID, Role: admin.Role}

	newRole := models.RoleTenant
	updated, err := svc.UpdateUserByAdmin(ctx, adminActor, member.ID, &UpdateUserByAdminInput{Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, updated.Role)

	// An admin cannot change their own role
	memberRole := models.RoleMember
	_, err = svc.UpdateUserByAdmin(ctx, adminActor, admin.ID, &UpdateUserByAdminInput{Role: &memberRole})
	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)

	// Email must stay unique
	takenEmail := "admin@test.com"
	_, err = svc.UpdateUserByAdmin(ctx, adminActor, member.ID, &UpdateUserByAdminInput{Email: &takenEmail})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	adminActor := Actor{UserID: admin.ID, Role: admin.Role}

	err := svc.DeleteUser(ctx, adminActor, admin.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)

	require.NoError(t, svc.DeleteUser(ctx, adminActor, member.ID))

	_, err = svc.GetUserByID(ctx, member.ID)
	assert.ErrorIs(t, err, ErrUserNotFoundSvc)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))
	ctx := context.Background()

	hash, err := password.Hash("oldsecret")
	require.NoError(t, err)
	user := &models.User{
		Email:    "owner@test.com",
		Password: hash,
		FullName: "Owner",
		Role:     models.RoleMember,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	err = svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{OldPassword: "wrong", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, ErrOldPasswordWrong)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{OldPassword: "oldsecret", NewPassword: "newsecret"}))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.True(t, password.Verify("newsecret", reloaded.Password))
}
