package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ssfowa-portal/internal/core/services"
	"ssfowa-portal/internal/pkg/response"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// AdminOverview returns the association-wide dashboard
// @Summary Admin dashboard
// @Description Get portal-wide stats (Admin only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) AdminOverview(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	overview, err := h.dashboardService.GetAdminOverview(c.Context(), actor)
	if err != nil {
		if errors.Is(err, services.ErrAdminOnly) {
			return response.Forbidden(c, "Admin access required")
		}
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", overview)
}

// ResidentOverview returns the caller's dashboard
// @Summary Resident dashboard
// @Description Get the caller's dues, requests and unread notifications
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) ResidentOverview(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	overview, err := h.dashboardService.GetResidentOverview(c.Context(), actor)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", overview)
}
