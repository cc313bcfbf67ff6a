package services

import (
	"context"
	"testing"
	"time"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRequestService(db *gorm.DB) *RequestService {
	notifySvc, _ := newNotifyService(db)
	return NewRequestService(
		repositories.NewRequestRepository(db),
		repositories.NewAmenityRepository(db),
		repositories.NewUserRepository(db),
		notifySvc,
	)
}

func createAmenity(t *testing.T, db *gorm.DB, name string, bookable bool) *models.Amenity {
	amenity := &models.Amenity{
		Name:       name,
		Category:   "hall",
		IsBookable: bookable,
		IsActive:   true,
	}
	require.NoError(t, db.Create(amenity).Error)
	return amenity
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func bookingInput(amenityID uint, date, start, end string) *CreateRequestInput {
	return &CreateRequestInput{
		RequestType:      models.RequestTypeAmenityBooking,
		Title:            "Birthday party",
		AmenityID:        &amenityID,
		BookingDate:      date,
		BookingStartTime: start,
		BookingEndTime:   end,
	}
}

func TestCreateBookingConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	other := createUser(t, db, "other@test.com", models.RoleMember, "B-202", "B")
	hall := createAmenity(t, db, "Community Hall", true)
	date := futureDate(7)

	_, err := svc.Create(ctx, Actor{UserID: member.ID, Role: member.Role},
		bookingInput(hall.ID, date, "09:00", "10:00"))
	require.NoError(t, err)

	// Overlapping slot on the same amenity and date is rejected
	_, err = svc.Create(ctx, Actor{UserID: other.ID, Role: other.Role},
		bookingInput(hall.ID, date, "09:30", "10:30"))
	assert.ErrorIs(t, err, ErrBookingConflict)

	// Slots are half-open: the next booking may start where the
	// previous one ends
	_, err = svc.Create(ctx, Actor{UserID: other.ID, Role: other.Role},
		bookingInput(hall.ID, date, "10:00", "11:00"))
	require.NoError(t, err)

	// A different date on the same amenity is free
	_, err = svc.Create(ctx, Actor{UserID: other.ID, Role: other.Role},
		bookingInput(hall.ID, futureDate(8), "09:00", "10:00"))
	require.NoError(t, err)

	// A different amenity on the same date is free
	clubhouse := createAmenity(t, db, "Clubhouse", true)
	_, err = svc.Create(ctx, Actor{UserID: other.ID, Role: other.Role},
		bookingInput(clubhouse.ID, date, "09:00", "10:00"))
	require.NoError(t, err)
}

func TestSlotOnAnyRequestTypeIsConflictChecked(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	other := createUser(t, db, "other@test.com", models.RoleMember, "B-202", "B")
	hall := createAmenity(t, db, "Community Hall", true)
	date := futureDate(7)
	actor := Actor{UserID: member.ID, Role: member.Role}

	// A general enquiry carrying a full slot reserves it
	_, err := svc.Create(ctx, actor, &CreateRequestInput{
		RequestType:      models.RequestTypeGeneralEnquiry,
		Title:            "Hold the hall for an AGM",
		AmenityID:        &hall.ID,
		BookingDate:      date,
		BookingStartTime: "18:00",
		BookingEndTime:   "20:00",
	})
	require.NoError(t, err)

	// A booking on the same slot now collides with it
	_, err = svc.Create(ctx, Actor{UserID: other.ID, Role: other.Role},
		bookingInput(hall.ID, date, "19:00", "21:00"))
	assert.ErrorIs(t, err, ErrBookingConflict)

	// Without a slot the same type passes straight through
	_, err = svc.Create(ctx, actor, &CreateRequestInput{
		RequestType: models.RequestTypeGeneralEnquiry,
		Title:       "Gate pass procedure",
	})
	require.NoError(t, err)
}

func TestRejectedBookingFreesSlot(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	hall := createAmenity(t, db, "Community Hall", true)
	date := futureDate(7)

	first, err := svc.Create(ctx, Actor{UserID: member.ID, Role: member.Role},
		bookingInput(hall.ID, date, "09:00", "10:00"))
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, Actor{UserID: admin.ID, Role: admin.Role}, first.ID,
		&SetStatusInput{Status: models.RequestStatusRejected})
	require.NoError(t, err)

	// A rejected booking no longer blocks the slot
	_, err = svc.Create(ctx, Actor{UserID: member.ID, Role: member.Role},
		bookingInput(hall.ID, date, "09:00", "10:00"))
	require.NoError(t, err)
}

func TestCreateBookingValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	actor := Actor{UserID: member.ID, Role: member.Role}
	hall := createAmenity(t, db, "Community Hall", true)
	pool := createAmenity(t, db, "Swimming Pool", false)

	_, err := svc.Create(ctx, actor, &CreateRequestInput{RequestType: "teleport", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidRequestType)

	// Booking without a slot
	_, err = svc.Create(ctx, actor, &CreateRequestInput{
		RequestType: models.RequestTypeAmenityBooking,
		Title:       "x",
		AmenityID:   &hall.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidBookingSlot)

	// Start must come before end
	_, err = svc.Create(ctx, actor, bookingInput(hall.ID, futureDate(7), "11:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidBookingSlot)

	// Yesterday is not bookable
	_, err = svc.Create(ctx, actor, bookingInput(hall.ID, time.Now().AddDate(0, 0, -1).Format("2006-01-02"), "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrBookingInPast)

	// Non-bookable amenity
	_, err = svc.Create(ctx, actor, bookingInput(pool.ID, futureDate(7), "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrAmenityNotBookable)

	// Unknown amenity
	_, err = svc.Create(ctx, actor, bookingInput(9999, futureDate(7), "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrAmenityNotFound)
}

func TestCreateRequestNotifiesAdmins(t *testing.T) {
	db := setupTestDB(t)
	notifySvc, notificationRepo := newNotifyService(db)
	svc := NewRequestService(
		repositories.NewRequestRepository(db),
		repositories.NewAmenityRepository(db),
		repositories.NewUserRepository(db),
		notifySvc,
	)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")

	_, err := svc.Create(ctx, Actor{UserID: member.ID, Role: member.Role}, &CreateRequestInput{
		RequestType: models.RequestTypeComplaint,
		Title:       "Lift out of order",
	})
	require.NoError(t, err)

	adminInbox, err := notificationRepo.ListByUser(ctx, admin.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, adminInbox, 1)
	assert.Equal(t, "New Request", adminInbox[0].Title)

	// The requester is not notified of their own filing
	memberInbox, err := notificationRepo.ListByUser(ctx, member.ID, false, 10)
	require.NoError(t, err)
	assert.Empty(t, memberInbox)
}

func TestSetStatus(t *testing.T) {
	db := setupTestDB(t)
	notifySvc, notificationRepo := newNotifyService(db)
	svc := NewRequestService(
		repositories.NewRequestRepository(db),
		repositories.NewAmenityRepository(db),
		repositories.NewUserRepository(db),
		notifySvc,
	)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	adminActor := Actor{UserID: admin.ID, Role: admin.Role}
	memberActor := Actor{UserID: member.ID, Role: member.Role}

	request, err := svc.Create(ctx, memberActor, &CreateRequestInput{
		RequestType: models.RequestTypeComplaint,
		Title:       "Water leakage in basement",
	})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, memberActor, request.ID, &SetStatusInput{Status: models.RequestStatusApproved})
	assert.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.SetStatus(ctx, adminActor, request.ID, &SetStatusInput{Status: "escalated"})
	assert.ErrorIs(t, err, ErrInvalidRequestStatus)

	_, err = svc.SetStatus(ctx, adminActor, 9999, &SetStatusInput{Status: models.RequestStatusApproved})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	updated, err := svc.SetStatus(ctx, adminActor, request.ID, &SetStatusInput{
		Status:     models.RequestStatusInProgress,
		AdminNotes: "Plumber scheduled",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInProgress, updated.Status)
	assert.Equal(t, "Plumber scheduled", updated.AdminNotes)

	_, err = svc.SetStatus(ctx, adminActor, request.ID, &SetStatusInput{Status: models.RequestStatusCompleted})
	require.NoError(t, err)

	inbox, err := notificationRepo.ListByUser(ctx, member.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	// Newest first
	assert.Equal(t, "Request Completed", inbox[0].Title)
	assert.Equal(t, "Request In Progress", inbox[1].Title)
}

func TestListAllAdminGate(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")

	_, err := svc.Create(ctx, Actor{UserID: member.ID, Role: member.Role}, &CreateRequestInput{
		RequestType: models.RequestTypeComplaint,
		Title:       "Street light broken",
	})
	require.NoError(t, err)

	_, _, err = svc.ListAll(ctx, Actor{UserID: member.ID, Role: member.Role}, repositories.RequestFilter{})
	assert.ErrorIs(t, err, ErrAdminOnly)

	requests, total, err := svc.ListAll(ctx, Actor{UserID: admin.ID, Role: admin.Role}, repositories.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.EqualValues(t, 1, total)
}

func TestGetByIDOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin, "", "")
	member := createUser(t, db, "owner@test.com", models.RoleMember, "A-101", "A")
	other := createUser(t, db, "other@test.com", models.RoleMember, "B-202", "B")

	request, err := svc.Create(ctx, Actor{UserID: member.ID, Role: member.Role}, &CreateRequestInput{
		RequestType: models.RequestTypeGeneralEnquiry,
		Title:       "Gate pass procedure",
	})
	require.NoError(t, err)

	// Owner and admin can read it
	_, err = svc.GetByID(ctx, Actor{UserID: member.ID, Role: member.Role}, request.ID)
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, Actor{UserID: admin.ID, Role: admin.Role}, request.ID)
	require.NoError(t, err)

	// Another resident cannot
	_, err = svc.GetByID(ctx, Actor{UserID: other.ID, Role: other.Role}, request.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
