package services

import (
	"context"
	"testing"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repositories.NewPaymentRepository(db),
		repositories.NewDueRepository(db),
		repositories.NewRequestRepository(db),
		repositories.NewNotificationRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestAdminOverview(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	adminActor := Actor{UserID: admin.ID, Role: admin.Role}
	ownerActor := Actor{UserID: owner.ID, Role: owner.Role}

	paymentSvc := newPaymentService(db)
	requestSvc := newRequestService(db)

	_, err := paymentSvc.GenerateDues(ctx, adminActor, &GenerateDuesInput{Amount: 2500, Month: 3, Year: 2025})
	require.NoError(t, err)

	initiated, err := paymentSvc.Initiate(ctx, ownerActor, &InitiatePaymentInput{
		Amount:      500,
		PaymentType: models.PaymentTypeOther,
	})
	require.NoError(t, err)
	_, err = paymentSvc.Confirm(ctx, ownerActor, initiated.Payment.ID, &ConfirmPaymentInput{GatewayPaymentID: "pay_1"})
	require.NoError(t, err)

	_, err = requestSvc.Create(ctx, ownerActor, &CreateRequestInput{
		RequestType: models.RequestTypeComplaint,
		Title:       "Streetlight broken",
	})
	require.NoError(t, err)

	svc := newDashboardService(db)
	overview, err := svc.GetAdminOverview(ctx, adminActor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.Payments.CompletedCount)
	assert.Equal(t, 500.0, overview.Payments.TotalCollected)
	assert.Equal(t, int64(1), overview.PendingDues)
	assert.Equal(t, int64(1), overview.PendingRequests)
	assert.Len(t, overview.RecentPayments, 1)
	assert.Len(t, overview.RecentRequests, 1)

	_, err = svc.GetAdminOverview(ctx, ownerActor)
	assert.ErrorIs(t, err, ErrAdminOnly)
}

func TestResidentOverview(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	adminActor := Actor{UserID: admin.ID, Role: admin.Role}
	ownerActor := Actor{UserID: owner.ID, Role: owner.Role}

	paymentSvc := newPaymentService(db)
	_, err := paymentSvc.GenerateDues(ctx, adminActor, &GenerateDuesInput{Amount: 2500, Month: 3, Year: 2025})
	require.NoError(t, err)

	notifySvc, _ := newNotifyService(db)
	notifySvc.Notify(ctx, owner.ID, "Reminder", "Dues pending", models.NotifyWarning, "/dues")

	svc := newDashboardService(db)
	overview, err := svc.GetResidentOverview(ctx, ownerActor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.UnpaidDues)
	assert.Len(t, overview.Dues, 1)
	assert.Equal(t, int64(1), overview.UnreadNotifications)

	// A resident without a flat gets an empty dues section
	vendor := createUser(t, db, "vendor@test.com", models.RoleVendor, "", "")
	overview, err = svc.GetResidentOverview(ctx, Actor{UserID: vendor.ID, Role: vendor.Role})
	require.NoError(t, err)
	assert.Equal(t, int64(0), overview.UnpaidDues)
	assert.Empty(t, overview.Dues)
}
