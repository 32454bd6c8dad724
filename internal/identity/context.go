// Package identity resolves the acting user from the request credential
// once per request and hands handlers an explicit authorization context,
// so no handler re-queries the store for role checks.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jiseti/jiseti-api/internal/models"
)

const localsKey = "auth_context"

// AuthContext is the caller's resolved identity for a single request.
type AuthContext struct {
	UserID uuid.UUID
	Role   string
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// FromContext returns the AuthContext set by the Resolve middleware.
func FromContext(c *fiber.Ctx) (AuthContext, bool) {
	auth, ok := c.Locals(localsKey).(AuthContext)
	return auth, ok
}

func setContext(c *fiber.Ctx, auth AuthContext) {
	c.Locals(localsKey, auth)
}

// subjectFromToken extracts the user UUID from the verified JWT placed in
// locals by the JWT middleware.
func subjectFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
