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

func newPaymentService(db *gorm.DB) *PaymentService {
	notifySvc, _ := newNotifyService(db)
	return NewPaymentService(
		repositories.NewPaymentRepository(db),
		repositories.NewDueRepository(db),
		repositories.NewUserRepository(db),
		notifySvc,
	)
}

func TestGenerateDues(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	createUser(t, db, "owner1@test.com", models.RoleMember, "A-101", "A")
	createUser(t, db, "owner2@test.com", models.RoleMember, "B-202", "B")
	createUser(t, db, "tenant@test.com", models.RoleTenant, "A-101", "A")

	actor := Actor{UserID: admin.ID, Role: admin.Role}

	out, err := svc.GenerateDues(ctx, actor, &GenerateDuesInput{
		Amount: 2500,
		Month:  3,
		Year:   2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Created)
	assert.Equal(t, 2, out.Flats)

	// Same period again: every flat is already billed
	out, err = svc.GenerateDues(ctx, actor, &GenerateDuesInput{
		Amount: 2500,
		Month:  3,
		Year:   2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Created)

	// A new period starts fresh
	out, err = svc.GenerateDues(ctx, actor, &GenerateDuesInput{
		Amount: 2500,
		Month:  4,
		Year:   2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Created)

	dues, err := svc.ListDuesByPeriod(ctx, actor, 3, 2025)
	require.NoError(t, err)
	require.Len(t, dues, 2)
	for _, due := range dues {
		assert.Equal(t, models.DueStatusPending, due.Status)
		assert.Equal(t, 2500.0, due.Amount)
	}
}

func TestGenerateDuesValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")

	adminActor := Actor{UserID: admin.ID, Role: admin.Role}
	memberActor := Actor{UserID: member.ID, Role: member.Role}

	_, err := svc.GenerateDues(ctx, memberActor, &GenerateDuesInput{Amount: 2500, Month: 3, Year: 2025})
	assert.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.GenerateDues(ctx, adminActor, &GenerateDuesInput{Amount: 0, Month: 3, Year: 2025})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.GenerateDues(ctx, adminActor, &GenerateDuesInput{Amount: 2500, Month: 13, Year: 2025})
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = svc.GenerateDues(ctx, adminActor, &GenerateDuesInput{Amount: 2500, Month: 3, Year: 1999})
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestConfirmSettlesDue(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	neighbour := createUser(t, db, "neighbour@test.com", models.RoleMember, "A-102", "A")

	adminActor := Actor{UserID: admin.ID, Role: admin.Role}
	ownerActor := Actor{UserID: owner.ID, Role: owner.Role}

	_, err := svc.GenerateDues(ctx, adminActor, &GenerateDuesInput{Amount: 2500, Month: 3, Year: 2025})
	require.NoError(t, err)

	month, year := 3, 2025
	initiated, err := svc.Initiate(ctx, ownerActor, &InitiatePaymentInput{
		Amount:      2500,
		PaymentType: models.PaymentTypeMaintenance,
		Month:       &month,
		Year:        &year,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, initiated.Payment.Status)
	assert.Equal(t, int64(250000), initiated.Order.Amount)
	assert.Equal(t, "INR", initiated.Order.Currency)
	assert.NotEmpty(t, initiated.Payment.ReceiptNumber)

	payment, err := svc.Confirm(ctx, ownerActor, initiated.Payment.ID, &ConfirmPaymentInput{
		GatewayPaymentID: "pay_abc123",
		GatewayOrderID:   initiated.Payment.GatewayOrderID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.NotNil(t, payment.PaidAt)

	// Only the payer's due flips to paid and links back to the payment
	dues, err := svc.ListDuesByPeriod(ctx, adminActor, 3, 2025)
	require.NoError(t, err)
	require.Len(t, dues, 2)
	for _, due := range dues {
		if due.FlatNumber == "A-101" {
			assert.Equal(t, models.DueStatusPaid, due.Status)
			require.NotNil(t, due.PaymentID)
			assert.Equal(t, payment.ID, *due.PaymentID)
		} else {
			assert.Equal(t, models.DueStatusPending, due.Status)
			assert.Nil(t, due.PaymentID)
		}
	}

	// A settled due drops off the caller's outstanding list
	outstanding, err := svc.ListDuesForUser(ctx, ownerActor)
	require.NoError(t, err)
	assert.Empty(t, outstanding)

	// The neighbour's stays outstanding
	outstanding, err = svc.ListDuesForUser(ctx, Actor{UserID: neighbour.ID, Role: neighbour.Role})
	require.NoError(t, err)
	assert.Len(t, outstanding, 1)
}

func TestConfirmTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	actor := Actor{UserID: owner.ID, Role: owner.Role}

	initiated, err := svc.Initiate(ctx, actor, &InitiatePaymentInput{
		Amount:      500,
		PaymentType: models.PaymentTypeBooking,
	})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, actor, initiated.Payment.ID, &ConfirmPaymentInput{GatewayPaymentID: "pay_1"})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, actor, initiated.Payment.ID, &ConfirmPaymentInput{GatewayPaymentID: "pay_2"})
	assert.ErrorIs(t, err, ErrPaymentAlreadyCompleted)
}

func TestConfirmWithoutGatewayRef(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	actor := Actor{UserID: owner.ID, Role: owner.Role}

	initiated, err := svc.Initiate(ctx, actor, &InitiatePaymentInput{
		Amount:      500,
		PaymentType: models.PaymentTypeBooking,
	})
	require.NoError(t, err)

	// Offline confirmation carries no gateway reference at all
	payment, err := svc.Confirm(ctx, actor, initiated.Payment.ID, &ConfirmPaymentInput{})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "demo_payment", payment.GatewayPaymentID)
}

func TestSettledDueKeepsFirstPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")

	adminActor := Actor{UserID: admin.ID, Role: admin.Role}
	ownerActor := Actor{UserID: owner.ID, Role: owner.Role}

	_, err := svc.GenerateDues(ctx, adminActor, &GenerateDuesInput{Amount: 2500, Month: 3, Year: 2025})
	require.NoError(t, err)

	month, year := 3, 2025
	pay := func() *models.Payment {
		initiated, err := svc.Initiate(ctx, ownerActor, &InitiatePaymentInput{
			Amount:      2500,
			PaymentType: models.PaymentTypeMaintenance,
			Month:       &month,
			Year:        &year,
		})
		require.NoError(t, err)
		payment, err := svc.Confirm(ctx, ownerActor, initiated.Payment.ID, &ConfirmPaymentInput{})
		require.NoError(t, err)
		return payment
	}

	first := pay()
	second := pay()
	assert.Equal(t, models.PaymentStatusCompleted, second.Status)

	// The due stays linked to the payment that settled it
	dues, err := svc.ListDuesByPeriod(ctx, adminActor, 3, 2025)
	require.NoError(t, err)
	require.Len(t, dues, 1)
	assert.Equal(t, models.DueStatusPaid, dues[0].Status)
	require.NotNil(t, dues[0].PaymentID)
	assert.Equal(t, first.ID, *dues[0].PaymentID)
}

func TestVendorCanPay(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	vendor := createUser(t, db, "vendor@test.com", models.RoleVendor, "", "")
	actor := Actor{UserID: vendor.ID, Role: vendor.Role}

	initiated, err := svc.Initiate(ctx, actor, &InitiatePaymentInput{
		Amount:      1200,
		PaymentType: models.PaymentTypeOther,
	})
	require.NoError(t, err)

	payment, err := svc.Confirm(ctx, actor, initiated.Payment.ID, &ConfirmPaymentInput{
		GatewayPaymentID: "pay_vendor",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestConfirmChecks(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	other := createUser(t, db, "other@test.com", models.RoleMember, "B-202", "B")

	initiated, err := svc.Initiate(ctx, Actor{UserID: owner.ID, Role: owner.Role}, &InitiatePaymentInput{
		Amount:      500,
		PaymentType: models.PaymentTypeOther,
	})
	require.NoError(t, err)

	// Somebody else's payment cannot be confirmed
	_, err = svc.Confirm(ctx, Actor{UserID: other.ID, Role: other.Role}, initiated.Payment.ID,
		&ConfirmPaymentInput{GatewayPaymentID: "pay_1"})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	// Wrong gateway order id is rejected before settlement
	_, err = svc.Confirm(ctx, Actor{UserID: owner.ID, Role: owner.Role}, initiated.Payment.ID,
		&ConfirmPaymentInput{GatewayPaymentID: "pay_1", GatewayOrderID: "order_bogus"})
	assert.ErrorIs(t, err, ErrGatewayMismatch)
}

func TestInitiateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	actor := Actor{UserID: owner.ID, Role: owner.Role}

	_, err := svc.Initiate(ctx, actor, &InitiatePaymentInput{Amount: -1, PaymentType: models.PaymentTypeOther})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Initiate(ctx, actor, &InitiatePaymentInput{Amount: 100, PaymentType: "bribe"})
	assert.ErrorIs(t, err, ErrInvalidPaymentType)

	// A period must carry both month and year
	month := 3
	_, err = svc.Initiate(ctx, actor, &InitiatePaymentInput{
		Amount:      100,
		PaymentType: models.PaymentTypeMaintenance,
		Month:       &month,
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestListDuesForUserWithoutFlat(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	vendor := createUser(t, db, "vendor@test.com", models.RoleVendor, "", "")

	dues, err := svc.ListDuesForUser(ctx, Actor{UserID: vendor.ID, Role: vendor.Role})
	require.NoError(t, err)
	assert.Empty(t, dues)
}

func TestListAllAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")

	_, err := svc.ListAll(ctx, Actor{UserID: member.ID, Role: member.Role}, repositories.PaymentFilter{})
	assert.ErrorIs(t, err, ErrAdminOnly)
}
