package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ssfowa-portal/internal/core/services"
)

// actorFromCtx builds the service-level caller identity from the locals
// set by the auth middleware. The bool is false when the middleware did
// not run or the token carried no usable identity.
func actorFromCtx(c *fiber.Ctx) (services.Actor, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return services.Actor{}, false
	}
	role, _ := c.Locals("role").(string)
	return services.Actor{UserID: userID, Role: role}, true
}
