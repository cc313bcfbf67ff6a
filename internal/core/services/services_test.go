package services

import (
	"testing"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role, flat, block string) *models.User {
	user := &models.User{
		Email:      email,
		Password:   "not-a-real-hash",
		FullName:   "Test " + email,
		FlatNumber: flat,
		Block:      block,
		Role:       role,
		IsActive:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newNotifyService(db *gorm.DB) (*NotificationService, *repositories.NotificationRepository) {
	notificationRepo := repositories.NewNotificationRepository(db)
	userRepo := repositories.NewUserRepository(db)
	return NewNotificationService(notificationRepo, userRepo), notificationRepo
}
