package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ssfowa-portal/internal/adapters/persistence/models"
	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/core/services"
	"ssfowa-portal/internal/pkg/pagination"
	"ssfowa-portal/internal/pkg/response"
)

// RequestHandler handles request and booking endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRequestRequest represents create request body
type CreateRequestRequest struct {
	RequestType      string `json:"request_type"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	AmenityID        *uint  `json:"amenity_id"`
	BookingDate      string `json:"booking_date"`
	BookingStartTime string `json:"booking_start_time"`
	BookingEndTime   string `json:"booking_end_time"`
	VehicleNumber    string `json:"vehicle_number"`
	VehicleType      string `json:"vehicle_type"`
}

// SetStatusRequest represents status update body
type SetStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

// Create files a new request or booking
// @Summary Create request
// @Description File a service request or amenity booking
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestRequest true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RequestType == "" {
		return response.BadRequest(c, "Request type is required")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	input := &services.CreateRequestInput{
		RequestType:      req.RequestType,
		Title:            req.Title,
		Description:      req.Description,
		AmenityID:        req.AmenityID,
		BookingDate:      req.BookingDate,
		BookingStartTime: req.BookingStartTime,
		BookingEndTime:   req.BookingEndTime,
		VehicleNumber:    req.VehicleNumber,
		VehicleType:      req.VehicleType,
	}

	request, err := h.requestService.Create(c.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequestType):
			return response.BadRequest(c, "Invalid request type")
		case errors.Is(err, services.ErrInvalidBookingSlot):
			return response.BadRequest(c, "Booking requires amenity, date, start and end time")
		case errors.Is(err, services.ErrBookingInPast):
			return response.BadRequest(c, "Booking date must not be in the past")
		case errors.Is(err, services.ErrAmenityNotFound):
			return response.NotFound(c, "Amenity not found")
		case errors.Is(err, services.ErrAmenityNotBookable):
			return response.BadRequest(c, "Amenity is not bookable")
		case errors.Is(err, services.ErrBookingConflict):
			return response.Conflict(c, "The slot is already booked")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Created(c, "Request created successfully", fiber.Map{
		"request": request.ToResponse(),
	})
}

// ListMine lists the caller's requests
// @Summary List own requests
// @Description Get the caller's requests and bookings
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by request type"
// @Success 200 {object} response.Response
// @Router /requests [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	filter := repositories.RequestFilter{
		Status:      c.Query("status"),
		RequestType: c.Query("type"),
		Offset:      params.Offset,
		Limit:       params.Limit,
	}

	requests, total, err := h.requestService.ListForUser(c.Context(), actor, filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "Requests retrieved successfully", pagination.NewResponse(toRequestResponses(requests), params, total))
}

// Get returns a single request
// @Summary Get request
// @Description Get a request by ID
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.requestService.GetByID(c.Context(), actor, uint(requestID))
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return response.NotFound(c, "Request not found")
		}
		return response.InternalServerError(c, "Failed to get request")
	}

	return response.Success(c, "Request retrieved successfully", fiber.Map{
		"request": request.ToResponse(),
	})
}

// ListAll lists every request
// @Summary List all requests
// @Description Get all requests and bookings (Admin only)
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by request type"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/requests [get]
func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	filter := repositories.RequestFilter{
		Status:      c.Query("status"),
		RequestType: c.Query("type"),
		Offset:      params.Offset,
		Limit:       params.Limit,
	}

	requests, total, err := h.requestService.ListAll(c.Context(), actor, filter)
	if err != nil {
		if errors.Is(err, services.ErrAdminOnly) {
			return response.Forbidden(c, "Admin access required")
		}
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "Requests retrieved successfully", pagination.NewResponse(toRequestResponses(requests), params, total))
}

// SetStatus moves a request to a new status
// @Summary Update request status
// @Description Approve, reject or progress a request (Admin only)
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body SetStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/requests/{id}/status [patch]
func (h *RequestHandler) SetStatus(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	input := &services.SetStatusInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	}

	request, err := h.requestService.SetStatus(c.Context(), actor, uint(requestID), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminOnly):
			return response.Forbidden(c, "Admin access required")
		case errors.Is(err, services.ErrInvalidRequestStatus):
			return response.BadRequest(c, "Invalid request status")
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Request not found")
		default:
			return response.InternalServerError(c, "Failed to update request")
		}
	}

	return response.Success(c, "Request status updated successfully", fiber.Map{
		"request": request.ToResponse(),
	})
}

func toRequestResponses(requests []*models.Request) []*models.RequestResponse {
	responses := make([]*models.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = r.ToResponse()
	}
	return responses
}
