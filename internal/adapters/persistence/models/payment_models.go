package models

import (
	"time"
)

// ============================================================
// Payment Ledger
// ============================================================

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment types
const (
	PaymentTypeMaintenance       = "maintenance"
	PaymentTypeSpecialAssessment = "special_assessment"
	PaymentTypeBooking           = "booking"
	PaymentTypePenalty           = "penalty"
	PaymentTypeOther             = "other"
)

// ValidPaymentType reports whether t is a known payment type
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeMaintenance, PaymentTypeSpecialAssessment, PaymentTypeBooking, PaymentTypePenalty, PaymentTypeOther:
		return true
	}
	return false
}

// Payment represents payments table. A payment may settle at most one
// maintenance due, linked through its (month, year) period.
type Payment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	Amount           float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentType      string     `gorm:"size:30;not null" json:"payment_type"`
	Description      string     `gorm:"type:text" json:"description"`
	Status           string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentMethod    string     `gorm:"size:30" json:"payment_method"`
	TransactionID    string     `gorm:"size:100" json:"transaction_id"`
	GatewayOrderID   string     `gorm:"size:100" json:"gateway_order_id"`
	GatewayPaymentID string     `gorm:"size:100" json:"gateway_payment_id"`
	ReceiptNumber    string     `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`
	Month            *int       `json:"month"`
	Year             *int       `json:"year"`
	PaidAt           *time.Time `json:"paid_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// IsCompleted reports whether the payment has settled
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// HasPeriod reports whether the payment is linked to a billing period
func (p *Payment) HasPeriod() bool {
	return p.Month != nil && p.Year != nil
}

// GatewayOrder is the opaque order handle handed to the external payment
// gateway at initiation. Amount is in minor units (paise).
type GatewayOrder struct {
	ID       string  `json:"id"`
	Amount   int64   `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

// ============================================================
// Dues Ledger
// ============================================================

// Due statuses
const (
	DueStatusPending = "pending"
	DueStatusPaid    = "paid"
	DueStatusOverdue = "overdue"
)

// MaintenanceDue represents maintenance_dues table: one scheduled
// obligation per flat per billing period. The composite unique index makes
// batch generation idempotent.
type MaintenanceDue struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FlatNumber string    `gorm:"size:20;not null;uniqueIndex:idx_dues_flat_period" json:"flat_number"`
	Block      string    `gorm:"size:10;uniqueIndex:idx_dues_flat_period" json:"block"`
	Amount     float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Month      int       `gorm:"not null;uniqueIndex:idx_dues_flat_period" json:"month"`
	Year       int       `gorm:"not null;uniqueIndex:idx_dues_flat_period" json:"year"`
	DueDate    time.Time `gorm:"type:date;not null" json:"due_date"`
	Status     string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentID  *uint     `json:"payment_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Payment *Payment `gorm:"foreignKey:PaymentID" json:"-"`
}

func (MaintenanceDue) TableName() string {
	return "maintenance_dues"
}

// IsPaid reports whether the due has been settled
func (d *MaintenanceDue) IsPaid() bool {
	return d.Status == DueStatusPaid
}
