package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/core/domain"
)

// RequestFilter narrows request listings
type RequestFilter struct {
	Status      string
	RequestType string
	Offset      int
	Limit       int
}

// RequestRepository handles request and booking persistence
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// CreateWithConflictCheck inserts a booking after verifying no pending or
// approved booking overlaps it on the same amenity and date. The check
// and insert run in one transaction, and the check is a locking read on
// MySQL: under InnoDB repeatable read a plain count scans a snapshot and
// two racing callers would both see zero overlaps. SQLite rejects FOR
// UPDATE and serializes its writers anyway.
func (r *RequestRepository) CreateWithConflictCheck(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Request{}).
			Where("amenity_id = ? AND booking_date = ?", *request.AmenityID, *request.BookingDate).
			Where("status IN ?", []string{models.RequestStatusPending, models.RequestStatusApproved}).
			Where("booking_start_time < ? AND ? < booking_end_time", *request.BookingEndTime, *request.BookingStartTime)
		if tx.Dialector.Name() == "mysql" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrBookingConflict
		}
		return tx.Create(request).Error
	})
}

func (r *RequestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).Preload("User").Preload("Amenity").First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepository) ListByUser(ctx context.Context, userID uint, filter RequestFilter) ([]*models.Request, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Request{}).
		Preload("Amenity").
		Where("user_id = ?", userID)
	return r.list(query, filter)
}

func (r *RequestRepository) ListAll(ctx context.Context, filter RequestFilter) ([]*models.Request, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Request{}).
		Preload("User").Preload("Amenity")
	return r.list(query, filter)
}

func (r *RequestRepository) list(query *gorm.DB, filter RequestFilter) ([]*models.Request, int64, error) {
	var requests []*models.Request
	var total int64

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RequestType != "" {
		query = query.Where("request_type = ?", filter.RequestType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uint, status, adminNotes string) error {
	updates := map[string]interface{}{"status": status}
	if adminNotes != "" {
		updates["admin_notes"] = adminNotes
	}
	return r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *RequestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
