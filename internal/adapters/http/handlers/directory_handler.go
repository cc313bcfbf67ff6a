package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/core/services"
	"ssfowa-portal/internal/pkg/pagination"
	"ssfowa-portal/internal/pkg/response"
)

// DirectoryHandler handles community directory endpoints: amenities,
// announcements, guidelines, vendors and emergency contacts
type DirectoryHandler struct {
	amenityRepo      *repositories.AmenityRepository
	announcementRepo *repositories.AnnouncementRepository
	guidelineRepo    *repositories.GuidelineRepository
	vendorRepo       *repositories.VendorRepository
	contactRepo      *repositories.ContactRepository
	notifyService    *services.NotificationService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(
	amenityRepo *repositories.AmenityRepository,
	announcementRepo *repositories.AnnouncementRepository,
	guidelineRepo *repositories.GuidelineRepository,
	vendorRepo *repositories.VendorRepository,
	contactRepo *repositories.ContactRepository,
	notifyService *services.NotificationService,
) *DirectoryHandler {
	return &DirectoryHandler{
		amenityRepo:      amenityRepo,
		announcementRepo: announcementRepo,
		guidelineRepo:    guidelineRepo,
		vendorRepo:       vendorRepo,
		contactRepo:      contactRepo,
		notifyService:    notifyService,
	}
}

// ============================================================
// Amenities
// ============================================================

// ListAmenities lists amenities
// @Summary List amenities
// @Description Get all active amenities
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /amenities [get]
func (h *DirectoryHandler) ListAmenities(c *fiber.Ctx) error {
	actor, _ := actorFromCtx(c)
	includeInactive := c.Query("all") == "true" && actor.IsAdmin()

	var amenities []*models.Amenity
	var err error

	if includeInactive {
		amenities, err = h.amenityRepo.ListAll(c.Context())
	} else {
		amenities, err = h.amenityRepo.List(c.Context())
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to list amenities")
	}

	return response.Success(c, "Amenities retrieved successfully", fiber.Map{
		"amenities": amenities,
	})
}

// GetAmenity gets an amenity by ID
// @Summary Get amenity
// @Description Get an amenity by ID
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Amenity ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /amenities/{id} [get]
func (h *DirectoryHandler) GetAmenity(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid amenity ID")
	}

	amenity, err := h.amenityRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Amenity not found")
	}

	return response.Success(c, "Amenity retrieved successfully", fiber.Map{
		"amenity": amenity,
	})
}

// CreateAmenity creates an amenity
// @Summary Create amenity
// @Description Create a new amenity (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.Amenity true "Amenity data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/amenities [post]
func (h *DirectoryHandler) CreateAmenity(c *fiber.Ctx) error {
	var amenity models.Amenity
	if err := c.BodyParser(&amenity); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if amenity.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	amenity.ID = 0
	if err := h.amenityRepo.Create(c.Context(), &amenity); err != nil {
		return response.InternalServerError(c, "Failed to create amenity")
	}

	return response.Created(c, "Amenity created successfully", fiber.Map{
		"amenity": amenity,
	})
}

// UpdateAmenity updates an amenity
// @Summary Update amenity
// @Description Update an amenity (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Amenity ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/amenities/{id} [put]
func (h *DirectoryHandler) UpdateAmenity(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid amenity ID")
	}

	amenity, err := h.amenityRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Amenity not found")
	}

	if err := c.BodyParser(amenity); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	amenity.ID = uint(id)

	if err := h.amenityRepo.Update(c.Context(), amenity); err != nil {
		return response.InternalServerError(c, "Failed to update amenity")
	}

	return response.Success(c, "Amenity updated successfully", fiber.Map{
		"amenity": amenity,
	})
}

// DeleteAmenity deletes an amenity
// @Summary Delete amenity
// @Description Delete an amenity (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Amenity ID"
// @Success 200 {object} response.Response
// @Router /admin/amenities/{id} [delete]
func (h *DirectoryHandler) DeleteAmenity(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid amenity ID")
	}

	if err := h.amenityRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete amenity")
	}

	return response.Success(c, "Amenity deleted successfully", nil)
}

// ============================================================
// Announcements
// ============================================================

// CreateAnnouncementRequest represents create announcement body
type CreateAnnouncementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	Location    string `json:"location"`
	IsPinned    bool   `json:"is_pinned"`
}

// ListAnnouncements lists announcements
// @Summary List announcements
// @Description Get announcements, pinned first
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Response
// @Router /announcements [get]
func (h *DirectoryHandler) ListAnnouncements(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	announcements, total, err := h.announcementRepo.List(c.Context(), c.Query("category"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list announcements")
	}

	return response.Success(c, "Announcements retrieved successfully", pagination.NewResponse(announcements, params, total))
}

// GetAnnouncement gets an announcement by ID
// @Summary Get announcement
// @Description Get an announcement by ID
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [get]
func (h *DirectoryHandler) GetAnnouncement(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	announcement, err := h.announcementRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Announcement not found")
	}

	return response.Success(c, "Announcement retrieved successfully", fiber.Map{
		"announcement": announcement,
	})
}

// CreateAnnouncement creates an announcement and notifies all residents
// @Summary Create announcement
// @Description Publish an announcement to every active user (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/announcements [post]
func (h *DirectoryHandler) CreateAnnouncement(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.Description == "" {
		return response.BadRequest(c, "Title and description are required")
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	announcement := &models.Announcement{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		EventTime:   req.EventTime,
		Location:    req.Location,
		IsPinned:    req.IsPinned,
		CreatedBy:   actor.UserID,
	}

	if req.EventDate != "" {
		eventDate, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			return response.BadRequest(c, "Invalid event date format, use YYYY-MM-DD")
		}
		announcement.EventDate = &eventDate
	}

	if err := h.announcementRepo.Create(c.Context(), announcement); err != nil {
		return response.InternalServerError(c, "Failed to create announcement")
	}

	if h.notifyService != nil {
		h.notifyService.NotifyAllActive(c.Context(),
			"New Announcement",
			announcement.Title,
			models.NotifyAnnouncement,
			"/announcements")
	}

	return response.Created(c, "Announcement created successfully", fiber.Map{
		"announcement": announcement,
	})
}

// UpdateAnnouncement updates an announcement
// @Summary Update announcement
// @Description Update an announcement (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/announcements/{id} [put]
func (h *DirectoryHandler) UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	announcement, err := h.announcementRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Announcement not found")
	}

	var req CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != "" {
		announcement.Title = req.Title
	}
	if req.Description != "" {
		announcement.Description = req.Description
	}
	if req.Category != "" {
		announcement.Category = req.Category
	}
	if req.EventTime != "" {
		announcement.EventTime = req.EventTime
	}
	if req.Location != "" {
		announcement.Location = req.Location
	}
	announcement.IsPinned = req.IsPinned
	if req.EventDate != "" {
		eventDate, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			return response.BadRequest(c, "Invalid event date format, use YYYY-MM-DD")
		}
		announcement.EventDate = &eventDate
	}

	if err := h.announcementRepo.Update(c.Context(), announcement); err != nil {
		return response.InternalServerError(c, "Failed to update announcement")
	}

	return response.Success(c, "Announcement updated successfully", fiber.Map{
		"announcement": announcement,
	})
}

// DeleteAnnouncement deletes an announcement
// @Summary Delete announcement
// @Description Delete an announcement (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Router /admin/announcements/{id} [delete]
func (h *DirectoryHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	if err := h.announcementRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete announcement")
	}

	return response.Success(c, "Announcement deleted successfully", nil)
}

// ============================================================
// Guidelines
// ============================================================

// ListGuidelines lists published guidelines
// @Summary List guidelines
// @Description Get published community guidelines
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param all query bool false "Include unpublished"
// @Success 200 {object} response.Response
// @Router /guidelines [get]
func (h *DirectoryHandler) ListGuidelines(c *fiber.Ctx) error {
	actor, _ := actorFromCtx(c)
	includeUnpublished := c.Query("all") == "true" && actor.IsAdmin()

	var guidelines []*models.Guideline
	var err error

	if includeUnpublished {
		guidelines, err = h.guidelineRepo.ListAll(c.Context())
	} else {
		guidelines, err = h.guidelineRepo.List(c.Context(), c.Query("category"))
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to list guidelines")
	}

	return response.Success(c, "Guidelines retrieved successfully", fiber.Map{
		"guidelines": guidelines,
	})
}

// CreateGuideline creates a guideline
// @Summary Create guideline
// @Description Create a community guideline (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/guidelines [post]
func (h *DirectoryHandler) CreateGuideline(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var guideline models.Guideline
	if err := c.BodyParser(&guideline); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if guideline.Title == "" || guideline.Content == "" {
		return response.BadRequest(c, "Title and content are required")
	}

	guideline.ID = 0
	guideline.CreatedBy = actor.UserID
	if err := h.guidelineRepo.Create(c.Context(), &guideline); err != nil {
		return response.InternalServerError(c, "Failed to create guideline")
	}

	return response.Created(c, "Guideline created successfully", fiber.Map{
		"guideline": guideline,
	})
}

// UpdateGuideline updates a guideline
// @Summary Update guideline
// @Description Update a community guideline (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guideline ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/guidelines/{id} [put]
func (h *DirectoryHandler) UpdateGuideline(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid guideline ID")
	}

	guideline, err := h.guidelineRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Guideline not found")
	}

	if err := c.BodyParser(guideline); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	guideline.ID = uint(id)

	if err := h.guidelineRepo.Update(c.Context(), guideline); err != nil {
		return response.InternalServerError(c, "Failed to update guideline")
	}

	return response.Success(c, "Guideline updated successfully", fiber.Map{
		"guideline": guideline,
	})
}

// DeleteGuideline deletes a guideline
// @Summary Delete guideline
// @Description Delete a community guideline (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guideline ID"
// @Success 200 {object} response.Response
// @Router /admin/guidelines/{id} [delete]
func (h *DirectoryHandler) DeleteGuideline(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid guideline ID")
	}

	if err := h.guidelineRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete guideline")
	}

	return response.Success(c, "Guideline deleted successfully", nil)
}

// ============================================================
// Vendors
// ============================================================

// ListVendors lists service vendors
// @Summary List vendors
// @Description Get the service provider directory
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Response
// @Router /vendors [get]
func (h *DirectoryHandler) ListVendors(c *fiber.Ctx) error {
	vendors, err := h.vendorRepo.List(c.Context(), c.Query("category"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list vendors")
	}

	return response.Success(c, "Vendors retrieved successfully", fiber.Map{
		"vendors": vendors,
	})
}

// CreateVendor creates a vendor entry
// @Summary Create vendor
// @Description Add a vendor to the directory (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/vendors [post]
func (h *DirectoryHandler) CreateVendor(c *fiber.Ctx) error {
	var vendor models.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if vendor.Name == "" || vendor.Phone == "" {
		return response.BadRequest(c, "Name and phone are required")
	}

	vendor.ID = 0
	if err := h.vendorRepo.Create(c.Context(), &vendor); err != nil {
		return response.InternalServerError(c, "Failed to create vendor")
	}

	return response.Created(c, "Vendor created successfully", fiber.Map{
		"vendor": vendor,
	})
}

// UpdateVendor updates a vendor entry
// @Summary Update vendor
// @Description Update a vendor in the directory (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/vendors/{id} [put]
func (h *DirectoryHandler) UpdateVendor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid vendor ID")
	}

	vendor, err := h.vendorRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Vendor not found")
	}

	if err := c.BodyParser(vendor); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	vendor.ID = uint(id)

	if err := h.vendorRepo.Update(c.Context(), vendor); err != nil {
		return response.InternalServerError(c, "Failed to update vendor")
	}

	return response.Success(c, "Vendor updated successfully", fiber.Map{
		"vendor": vendor,
	})
}

// DeleteVendor deletes a vendor entry
// @Summary Delete vendor
// @Description Remove a vendor from the directory (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Success 200 {object} response.Response
// @Router /admin/vendors/{id} [delete]
func (h *DirectoryHandler) DeleteVendor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid vendor ID")
	}

	if err := h.vendorRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete vendor")
	}

	return response.Success(c, "Vendor deleted successfully", nil)
}

// ============================================================
// Emergency Contacts
// ============================================================

// ListContacts lists emergency contacts
// @Summary List emergency contacts
// @Description Get emergency contacts ordered for display
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Response
// @Router /contacts [get]
func (h *DirectoryHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.contactRepo.List(c.Context(), c.Query("category"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list contacts")
	}

	return response.Success(c, "Contacts retrieved successfully", fiber.Map{
		"contacts": contacts,
	})
}

// CreateContact creates an emergency contact
// @Summary Create emergency contact
// @Description Add an emergency contact (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/contacts [post]
func (h *DirectoryHandler) CreateContact(c *fiber.Ctx) error {
	var contact models.EmergencyContact
	if err := c.BodyParser(&contact); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if contact.Name == "" || contact.Phone == "" {
		return response.BadRequest(c, "Name and phone are required")
	}

	contact.ID = 0
	if err := h.contactRepo.Create(c.Context(), &contact); err != nil {
		return response.InternalServerError(c, "Failed to create contact")
	}

	return response.Created(c, "Contact created successfully", fiber.Map{
		"contact": contact,
	})
}

// UpdateContact updates an emergency contact
// @Summary Update emergency contact
// @Description Update an emergency contact (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/contacts/{id} [put]
func (h *DirectoryHandler) UpdateContact(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid contact ID")
	}

	contact, err := h.contactRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Contact not found")
	}

	if err := c.BodyParser(contact); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	contact.ID = uint(id)

	if err := h.contactRepo.Update(c.Context(), contact); err != nil {
		return response.InternalServerError(c, "Failed to update contact")
	}

	return response.Success(c, "Contact updated successfully", fiber.Map{
		"contact": contact,
	})
}

// DeleteContact deletes an emergency contact
// @Summary Delete emergency contact
// @Description Remove an emergency contact (Admin only)
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} response.Response
// @Router /admin/contacts/{id} [delete]
func (h *DirectoryHandler) DeleteContact(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid contact ID")
	}

	if err := h.contactRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete contact")
	}

	return response.Success(c, "Contact deleted successfully", nil)
}
