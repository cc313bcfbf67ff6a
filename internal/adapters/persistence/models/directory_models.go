package models

import (
	"time"
)

// ============================================================
// Directory / Content Tables
// ============================================================

// Announcement represents announcements table
type Announcement struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    string     `gorm:"size:30;not null;default:'general';index" json:"category"`
	EventDate   *time.Time `json:"event_date"`
	EventTime   string     `gorm:"size:20" json:"event_time"`
	Location    string     `gorm:"size:200" json:"location"`
	IsPinned    bool       `gorm:"default:false" json:"is_pinned"`
	CreatedBy   uint       `json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// Guideline represents guidelines table (community policies)
type Guideline struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"size:30;not null;index" json:"category"`
	IsPublished bool      `gorm:"default:true" json:"is_published"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guideline) TableName() string {
	return "guidelines"
}

// Vendor represents vendors table (service provider directory)
type Vendor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Category       string    `gorm:"size:30;not null;index" json:"category"`
	Phone          string    `gorm:"size:20;not null" json:"phone"`
	AlternatePhone string    `gorm:"size:20" json:"alternate_phone"`
	Email          string    `gorm:"size:100" json:"email"`
	Address        string    `gorm:"size:255" json:"address"`
	Availability   string    `gorm:"size:100" json:"availability"`
	Rating         float64   `gorm:"default:0" json:"rating"`
	TotalReviews   int       `gorm:"default:0" json:"total_reviews"`
	IsVerified     bool      `gorm:"default:false" json:"is_verified"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// EmergencyContact represents emergency_contacts table
type EmergencyContact struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Category        string    `gorm:"size:30;not null;index" json:"category"`
	Phone           string    `gorm:"size:20;not null" json:"phone"`
	AlternatePhone  string    `gorm:"size:20" json:"alternate_phone"`
	Address         string    `gorm:"size:255" json:"address"`
	IsAvailable24x7 bool      `gorm:"default:false" json:"is_available_24x7"`
	Notes           string    `gorm:"type:text" json:"notes"`
	SortOrder       int       `gorm:"default:0" json:"sort_order"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}
