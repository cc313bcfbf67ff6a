package config

import (
	"log"

	"gorm.io/gorm"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedAmenities(); err != nil {
		log.Printf("⚠️ Amenity seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@ssfowa.org",
		Password: hashedPassword,
		FullName: "Association Admin",
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedAmenities seeds the bookable amenities of the community
func (s *Seeder) seedAmenities() error {
	var count int64
	s.db.Model(&models.Amenity{}).Count(&count)
	if count > 0 {
		return nil // Amenities already seeded
	}

	amenities := []models.Amenity{
		{Name: "Community Hall", Category: "hall", Timings: "09:00 - 22:00", IsBookable: true, BookingFee: 2000, IsActive: true},
		{Name: "Clubhouse", Category: "recreation", Timings: "06:00 - 22:00", IsBookable: true, BookingFee: 500, IsActive: true},
		{Name: "Swimming Pool", Category: "sports", Timings: "06:00 - 20:00", IsBookable: false, IsActive: true},
		{Name: "Gym", Category: "sports", Timings: "05:00 - 22:00", IsBookable: false, IsActive: true},
		{Name: "Badminton Court", Category: "sports", Timings: "06:00 - 21:00", IsBookable: true, BookingFee: 200, IsActive: true},
	}

	if err := s.db.Create(&amenities).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d amenities", len(amenities))
	return nil
}
