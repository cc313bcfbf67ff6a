package models

import (
	"time"
)

// ============================================================
// Amenities
// ============================================================

// Amenity represents amenities table
type Amenity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:30;not null;default:'general'" json:"category"`
	Timings     string    `gorm:"size:200" json:"timings"`
	Rules       string    `gorm:"type:text" json:"rules"`
	Capacity    *int      `json:"capacity"`
	IsBookable  bool      `gorm:"default:false" json:"is_bookable"`
	BookingFee  float64   `gorm:"type:decimal(10,2);default:0" json:"booking_fee"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Amenity) TableName() string {
	return "amenities"
}

// ============================================================
// Service Requests & Bookings
// ============================================================

// Request statuses
const (
	RequestStatusPending    = "pending"
	RequestStatusApproved   = "approved"
	RequestStatusRejected   = "rejected"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
)

// ValidRequestStatus reports whether s is a known request status
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusInProgress, RequestStatusCompleted:
		return true
	}
	return false
}

// Request types
const (
	RequestTypeVehicleSticker = "vehicle_sticker"
	RequestTypeAddaAccess     = "adda_access"
	RequestTypeHallBooking    = "hall_booking"
	RequestTypeAmenityBooking = "amenity_booking"
	RequestTypeGeneralEnquiry = "general_enquiry"
	RequestTypeComplaint      = "complaint"
	RequestTypeSuggestion     = "suggestion"
)

// ValidRequestType reports whether t is a known request type
func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeVehicleSticker, RequestTypeAddaAccess, RequestTypeHallBooking,
		RequestTypeAmenityBooking, RequestTypeGeneralEnquiry, RequestTypeComplaint, RequestTypeSuggestion:
		return true
	}
	return false
}

// Request represents requests table. Booking fields are set only for
// amenity bookings; start/end are HH:MM strings forming a [start, end)
// interval on the booking date.
type Request struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	RequestType      string     `gorm:"size:30;not null" json:"request_type"`
	Title            string     `gorm:"size:200;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Status           string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminNotes       string     `gorm:"type:text" json:"admin_notes"`
	BookingDate      *time.Time `gorm:"type:date;index" json:"booking_date"`
	BookingStartTime *string    `gorm:"size:10" json:"booking_start_time"`
	BookingEndTime   *string    `gorm:"size:10" json:"booking_end_time"`
	AmenityID        *uint      `gorm:"index" json:"amenity_id"`
	VehicleNumber    string     `gorm:"size:30" json:"vehicle_number"`
	VehicleType      string     `gorm:"size:30" json:"vehicle_type"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Amenity *Amenity `gorm:"foreignKey:AmenityID" json:"amenity,omitempty"`
}

func (Request) TableName() string {
	return "requests"
}

// IsBooking reports whether the request carries amenity booking fields
func (r *Request) IsBooking() bool {
	return r.AmenityID != nil && r.BookingDate != nil && r.BookingStartTime != nil
}

// RequestResponse DTO
type RequestResponse struct {
	ID               uint       `json:"id"`
	UserID           uint       `json:"user_id"`
	RequestType      string     `json:"request_type"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	AdminNotes       string     `json:"admin_notes,omitempty"`
	BookingDate      *time.Time `json:"booking_date,omitempty"`
	BookingStartTime *string    `json:"booking_start_time,omitempty"`
	BookingEndTime   *string    `json:"booking_end_time,omitempty"`
	AmenityID        *uint      `json:"amenity_id,omitempty"`
	AmenityName      string     `json:"amenity_name,omitempty"`
	VehicleNumber    string     `json:"vehicle_number,omitempty"`
	VehicleType      string     `json:"vehicle_type,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (r *Request) ToResponse() *RequestResponse {
	resp := &RequestResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		RequestType:      r.RequestType,
		Title:            r.Title,
		Description:      r.Description,
		Status:           r.Status,
		AdminNotes:       r.AdminNotes,
		BookingDate:      r.BookingDate,
		BookingStartTime: r.BookingStartTime,
		BookingEndTime:   r.BookingEndTime,
		AmenityID:        r.AmenityID,
		VehicleNumber:    r.VehicleNumber,
		VehicleType:      r.VehicleType,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if r.Amenity != nil {
		resp.AmenityName = r.Amenity.Name
	}

	return resp
}
