package identity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/models"
	"gorm.io/gorm"
)

// Resolve loads the acting user behind the verified token and attaches an
// AuthContext. Runs after the JWT middleware; a token whose user no
// longer exists is rejected.
func Resolve(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := subjectFromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.Select("id", "role").First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		setContext(c, AuthContext{UserID: user.ID, Role: user.Role})
		return c.Next()
	}
}
