package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Users & Auth
// ============================================================

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleTenant = "tenant"
	RoleVendor = "vendor"
)

// User represents users table
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	FullName   string         `gorm:"size:100;not null" json:"full_name"`
	Phone      string         `gorm:"size:20" json:"phone"`
	FlatNumber string         `gorm:"size:20;index" json:"flat_number"`
	Block      string         `gorm:"size:10" json:"block"`
	Role       string         `gorm:"size:20;not null;default:'member';index" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HasFlat reports whether the user has a flat assignment
func (u *User) HasFlat() bool {
	return u.FlatNumber != ""
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	FlatNumber string    `json:"flat_number,omitempty"`
	Block      string    `json:"block,omitempty"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Phone:      u.Phone,
		FlatNumber: u.FlatNumber,
		Block:      u.Block,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Notifications
// ============================================================

// Notification types
const (
	NotifyInfo         = "info"
	NotifyWarning      = "warning"
	NotifySuccess      = "success"
	NotifyError        = "error"
	NotifyPayment      = "payment"
	NotifyAnnouncement = "announcement"
)

// Notification represents notifications table (per-user inbox)
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"size:20;not null;default:'info'" json:"type"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	Link      string    `gorm:"size:255" json:"link"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all portal tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Users & Auth
		&User{},
		&RefreshToken{},
		// Ledgers
		&Payment{},
		&MaintenanceDue{},
		// Requests & Bookings
		&Amenity{},
		&Request{},
		// Notifications
		&Notification{},
		// Directory
		&Announcement{},
		&Guideline{},
		&Vendor{},
		&EmergencyContact{},
	)
}
