package middleware

import (
	"algomate/backend/config"
	"algomate/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the Locals key under which AuthMiddleware stores the
// authenticated user's ID.
const UserIDKey = "userID"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Invalid or missing authorization token")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID reads the authenticated user's ID set by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(UserIDKey).(uint); ok {
		return id
	}
	return 0
}
