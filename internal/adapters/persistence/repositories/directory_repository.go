package repositories

import (
	"context"

	"gorm.io/gorm"

	"ssfowa-portal/internal/adapters/persistence/models"
)

// AmenityRepository handles amenity data access
type AmenityRepository struct {
	db *gorm.DB
}

// NewAmenityRepository creates a new amenity repository
func NewAmenityRepository(db *gorm.DB) *AmenityRepository {
	return &AmenityRepository{db: db}
}

// Create creates a new amenity
func (r *AmenityRepository) Create(ctx context.Context, amenity *models.Amenity) error {
	return r.db.WithContext(ctx).Create(amenity).Error
}

// GetByID gets an amenity by ID
func (r *AmenityRepository) GetByID(ctx context.Context, id uint) (*models.Amenity, error) {
	var amenity models.Amenity
	err := r.db.WithContext(ctx).First(&amenity, id).Error
	return &amenity, err
}

// List lists all active amenities
func (r *AmenityRepository) List(ctx context.Context) ([]*models.Amenity, error) {
	var amenities []*models.Amenity
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&amenities).Error
	return amenities, err
}

// ListAll lists all amenities including inactive
func (r *AmenityRepository) ListAll(ctx context.Context) ([]*models.Amenity, error) {
	var amenities []*models.Amenity
	err := r.db.WithContext(ctx).Order("name ASC").Find(&amenities).Error
	return amenities, err
}

// Update updates an amenity
func (r *AmenityRepository) Update(ctx context.Context, amenity *models.Amenity) error {
	return r.db.WithContext(ctx).Save(amenity).Error
}

// Delete deletes an amenity
func (r *AmenityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Amenity{}, id).Error
}

// AnnouncementRepository handles announcement data access
type AnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create creates a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

// GetByID gets an announcement by ID
func (r *AnnouncementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	err := r.db.WithContext(ctx).Preload("Author").First(&announcement, id).Error
	return &announcement, err
}

// List lists announcements, pinned first, newest next
func (r *AnnouncementRepository) List(ctx context.Context, category string, offset, limit int) ([]*models.Announcement, int64, error) {
	var announcements []*models.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Announcement{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Author").
		Order("is_pinned DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&announcements).Error
	if err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}

// Update updates an announcement
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

// Delete deletes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}

// GuidelineRepository handles guideline data access
type GuidelineRepository struct {
	db *gorm.DB
}

// NewGuidelineRepository creates a new guideline repository
func NewGuidelineRepository(db *gorm.DB) *GuidelineRepository {
	return &GuidelineRepository{db: db}
}

// Create creates a new guideline
func (r *GuidelineRepository) Create(ctx context.Context, guideline *models.Guideline) error {
	return r.db.WithContext(ctx).Create(guideline).Error
}

// GetByID gets a guideline by ID
func (r *GuidelineRepository) GetByID(ctx context.Context, id uint) (*models.Guideline, error) {
	var guideline models.Guideline
	err := r.db.WithContext(ctx).First(&guideline, id).Error
	return &guideline, err
}

// List lists published guidelines ordered by sort_order
func (r *GuidelineRepository) List(ctx context.Context, category string) ([]*models.Guideline, error) {
	query := r.db.WithContext(ctx).Where("is_published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var guidelines []*models.Guideline
	err := query.Order("sort_order ASC, created_at DESC").Find(&guidelines).Error
	return guidelines, err
}

// ListAll lists all guidelines including unpublished
func (r *GuidelineRepository) ListAll(ctx context.Context) ([]*models.Guideline, error) {
	var guidelines []*models.Guideline
	err := r.db.WithContext(ctx).Order("sort_order ASC, created_at DESC").Find(&guidelines).Error
	return guidelines, err
}

// Update updates a guideline
func (r *GuidelineRepository) Update(ctx context.Context, guideline *models.Guideline) error {
	return r.db.WithContext(ctx).Save(guideline).Error
}

// Delete deletes a guideline
func (r *GuidelineRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Guideline{}, id).Error
}

// VendorRepository handles vendor directory data access
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create creates a new vendor
func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// GetByID gets a vendor by ID
func (r *VendorRepository) GetByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).First(&vendor, id).Error
	return &vendor, err
}

// List lists vendors, optionally filtered by category
func (r *VendorRepository) List(ctx context.Context, category string) ([]*models.Vendor, error) {
	query := r.db.WithContext(ctx).Model(&models.Vendor{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var vendors []*models.Vendor
	err := query.Order("rating DESC, name ASC").Find(&vendors).Error
	return vendors, err
}

// Update updates a vendor
func (r *VendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete deletes a vendor
func (r *VendorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Vendor{}, id).Error
}

// ContactRepository handles emergency contact data access
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a new emergency contact
func (r *ContactRepository) Create(ctx context.Context, contact *models.EmergencyContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetByID gets an emergency contact by ID
func (r *ContactRepository) GetByID(ctx context.Context, id uint) (*models.EmergencyContact, error) {
	var contact models.EmergencyContact
	err := r.db.WithContext(ctx).First(&contact, id).Error
	return &contact, err
}

// List lists emergency contacts, optionally filtered by category
func (r *ContactRepository) List(ctx context.Context, category string) ([]*models.EmergencyContact, error) {
	query := r.db.WithContext(ctx).Model(&models.EmergencyContact{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var contacts []*models.EmergencyContact
	err := query.Order("sort_order ASC, name ASC").Find(&contacts).Error
	return contacts, err
}

// Update updates an emergency contact
func (r *ContactRepository) Update(ctx context.Context, contact *models.EmergencyContact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete deletes an emergency contact
func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.EmergencyContact{}, id).Error
}
