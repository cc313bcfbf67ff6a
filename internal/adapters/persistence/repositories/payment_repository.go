package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/core/domain"
)

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	Status      string
	PaymentType string
	Offset      int
	Limit       int
}

// PaymentStats summarizes the ledger for the admin overview
type PaymentStats struct {
	TotalPayments  int64   `json:"total_payments"`
	CompletedCount int64   `json:"completed_count"`
	PendingCount   int64   `json:"pending_count"`
	TotalCollected float64 `json:"total_collected"`
}

// PaymentRepository handles payment persistence
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Preload("User").First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uint, filter PaymentFilter) ([]*models.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("user_id = ?", userID)
	return r.list(query, filter)
}

func (r *PaymentRepository) ListAll(ctx context.Context, filter PaymentFilter) ([]*models.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{}).Preload("User")
	return r.list(query, filter)
}

func (r *PaymentRepository) list(query *gorm.DB, filter PaymentFilter) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PaymentRepository) GetStats(ctx context.Context) (*PaymentStats, error) {
	stats := &PaymentStats{}
	db := r.db.WithContext(ctx).Model(&models.Payment{})

	if err := db.Count(&stats.TotalPayments).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Count(&stats.CompletedCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusPending).
		Count(&stats.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalCollected).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// ConfirmWithDue marks a pending payment completed and settles the
// matching maintenance due in a single transaction. The payment must
// belong to userID. Confirming twice fails with
// ErrPaymentAlreadyCompleted; a missing due is not an error because
// ad-hoc payments carry no billing period.
func (r *PaymentRepository) ConfirmWithDue(ctx context.Context, paymentID, userID uint, gatewayPaymentID, flatNumber, block string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", paymentID, userID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		// The status guard makes the flip a conditional write: of two
		// concurrent confirms only the one that moves the row off
		// pending sees an affected row, the other gets the conflict.
		now := time.Now()
		result := tx.Model(&models.Payment{}).
			Where("id = ? AND status <> ?", payment.ID, models.PaymentStatusCompleted).
			Updates(map[string]interface{}{
				"status":             models.PaymentStatusCompleted,
				"gateway_payment_id": gatewayPaymentID,
				"payment_method":     "online",
				"paid_at":            &now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPaymentAlreadyCompleted
		}
		payment.Status = models.PaymentStatusCompleted
		payment.GatewayPaymentID = gatewayPaymentID
		payment.PaymentMethod = "online"
		payment.PaidAt = &now

		if payment.HasPeriod() && flatNumber != "" {
			// Already-settled dues keep their original payment link
			err := tx.Model(&models.MaintenanceDue{}).
				Where("flat_number = ? AND (block = ? OR block = '') AND month = ? AND year = ?",
					flatNumber, block, *payment.Month, *payment.Year).
				Where("status <> ?", models.DueStatusPaid).
				Updates(map[string]interface{}{
					"status":     models.DueStatusPaid,
					"payment_id": payment.ID,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
