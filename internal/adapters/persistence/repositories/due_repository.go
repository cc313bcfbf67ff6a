package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/core/domain"
)

// DueRepository handles maintenance due persistence
type DueRepository struct {
	db *gorm.DB
}

// NewDueRepository creates a new due repository
func NewDueRepository(db *gorm.DB) *DueRepository {
	return &DueRepository{db: db}
}

// GenerateForPeriod inserts one pending due per flat for the given month
// and year. Flats that already have a due for the period are skipped via
// the unique index, so re-running for the same period creates nothing.
// Returns the number of dues actually created.
func (r *DueRepository) GenerateForPeriod(ctx context.Context, flats []FlatAssignment, amount float64, month, year int, dueDate time.Time) (int, error) {
	created := 0
	for _, flat := range flats {
		due := &models.MaintenanceDue{
			FlatNumber: flat.FlatNumber,
			Block:      flat.Block,
			Month:      month,
			Year:       year,
			Amount:     amount,
			DueDate:    dueDate,
			Status:     models.DueStatusPending,
		}
		result := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(due)
		if result.Error != nil {
			return created, result.Error
		}
		if result.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}

func (r *DueRepository) GetByID(ctx context.Context, id uint) (*models.MaintenanceDue, error) {
	var due models.MaintenanceDue
	err := r.db.WithContext(ctx).First(&due, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &due, nil
}

// ListByFlat returns every due for a unit, newest period first. An empty
// block on either side matches units recorded without a block.
func (r *DueRepository) ListByFlat(ctx context.Context, flatNumber, block string) ([]*models.MaintenanceDue, error) {
	var dues []*models.MaintenanceDue
	err := r.db.WithContext(ctx).
		Where("flat_number = ? AND (block = ? OR block = '')", flatNumber, block).
		Order("year DESC, month DESC").
		Find(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}

// ListUnpaidByFlat returns a unit's outstanding dues, newest period first
func (r *DueRepository) ListUnpaidByFlat(ctx context.Context, flatNumber, block string) ([]*models.MaintenanceDue, error) {
	var dues []*models.MaintenanceDue
	err := r.db.WithContext(ctx).
		Where("flat_number = ? AND (block = ? OR block = '')", flatNumber, block).
		Where("status <> ?", models.DueStatusPaid).
		Order("year DESC, month DESC").
		Find(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}

func (r *DueRepository) ListByPeriod(ctx context.Context, month, year int) ([]*models.MaintenanceDue, error) {
	var dues []*models.MaintenanceDue
	err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		Order("flat_number ASC").
		Find(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}

// CountPendingAll counts unsettled dues across all flats
func (r *DueRepository) CountPendingAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaintenanceDue{}).
		Where("status <> ?", models.DueStatusPaid).
		Count(&count).Error
	return count, err
}

func (r *DueRepository) CountUnpaid(ctx context.Context, flatNumber, block string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaintenanceDue{}).
		Where("flat_number = ? AND (block = ? OR block = '')", flatNumber, block).
		Where("status <> ?", models.DueStatusPaid).
		Count(&count).Error
	return count, err
}
