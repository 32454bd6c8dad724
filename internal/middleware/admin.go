package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/identity"
)

// AdminRequired rejects callers whose resolved identity is not an admin.
// Must run after identity.Resolve.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, ok := identity.FromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !auth.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
