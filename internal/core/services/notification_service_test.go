package services

import (
	"context"
	"fmt"
	"testing"

	"ssfowa-portal/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyAdminsReachesAdminsOnly(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newNotifyService(db)
	ctx := context.Background()

	admin1 := createUser(t, db, "admin1@test.com", models.RoleAdmin, "", "")
	admin2 := createUser(t, db, "admin2@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")

	svc.NotifyAdmins(ctx, "Payment Received", "Somebody paid", models.NotifyPayment, "/admin/payments")

	for _, adminID := range []uint{admin1.ID, admin2.ID} {
		inbox, unread, err := svc.ListInbox(ctx, adminID, false, 10)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, int64(1), unread)
	}

	inbox, _, err := svc.ListInbox(ctx, member.ID, false, 10)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestNotifyAdminsSurvivesFailedRecipient(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newNotifyService(db)
	ctx := context.Background()

	broken := createUser(t, db, "admin1@test.com", models.RoleAdmin, "", "")
	admin2 := createUser(t, db, "admin2@test.com", models.RoleAdmin, "", "")
	admin3 := createUser(t, db, "admin3@test.com", models.RoleAdmin, "", "")

	// Make every insert for one recipient fail at the database level
	require.NoError(t, db.Exec(fmt.Sprintf(
		`CREATE TRIGGER reject_inbox BEFORE INSERT ON notifications
		 WHEN NEW.user_id = %d
		 BEGIN SELECT RAISE(ABORT, 'inbox unavailable'); END`, broken.ID)).Error)

	svc.NotifyAdmins(ctx, "Payment Received", "Somebody paid", models.NotifyPayment, "/admin/payments")

	// The other admins are still delivered to
	for _, adminID := range []uint{admin2.ID, admin3.ID} {
		inbox, _, err := svc.ListInbox(ctx, adminID, false, 10)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
	}

	inbox, _, err := svc.ListInbox(ctx, broken.ID, false, 10)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestNotifyAllActiveSkipsInactive(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newNotifyService(db)
	ctx := context.Background()

	active := createUser(t, db, "active@test.com", models.RoleMember, "A-101", "A")
	inactive := createUser(t, db, "inactive@test.com", models.RoleMember, "B-202", "B")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)

	svc.NotifyAllActive(ctx, "New Announcement", "Water supply shutdown on Sunday", models.NotifyAnnouncement, "/announcements")

	inbox, _, err := svc.ListInbox(ctx, active.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	inbox, _, err = svc.ListInbox(ctx, inactive.ID, false, 10)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestMarkRead(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newNotifyService(db)
	ctx := context.Background()

	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	other := createUser(t, db, "other@test.com", models.RoleMember, "B-202", "B")

	svc.Notify(ctx, member.ID, "Request Approved", "Your request was approved", models.NotifySuccess, "/requests")

	inbox, unread, err := svc.ListInbox(ctx, member.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.Equal(t, int64(1), unread)

	// Another user cannot mark it
	err = svc.MarkRead(ctx, inbox[0].ID, other.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(ctx, inbox[0].ID, member.ID))

	_, unread, err = svc.ListInbox(ctx, member.ID, false, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	// Unread-only view is now empty
	unreadOnly, _, err := svc.ListInbox(ctx, member.ID, true, 10)
	require.NoError(t, err)
	assert.Empty(t, unreadOnly)
}

func TestMarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newNotifyService(db)
	ctx := context.Background()

	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	for i := 0; i < 3; i++ {
		svc.Notify(ctx, member.ID, "Reminder", "Dues pending", models.NotifyWarning, "/dues")
	}

	affected, err := svc.MarkAllRead(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	_, unread, err := svc.ListInbox(ctx, member.ID, false, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
