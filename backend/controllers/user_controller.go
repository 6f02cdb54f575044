package controllers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"algomate/backend/config"
	"algomate/backend/middleware"
	"algomate/backend/models"
	"algomate/backend/utils"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile returns the authenticated user's profile together with their
// platform connections. Sensitive fields never leave this handler.
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var connections []models.PlatformConnection
	uc.DB.Where("user_id = ?", userID).Find(&connections)

	connected := make([]fiber.Map, 0, len(connections))
	for _, conn := range connections {
		connected = append(connected, fiber.Map{
			"platform": conn.Platform,
			"handle":   conn.Handle,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"full_name":   user.FullName,
		"avatar_url":  user.AvatarURL,
		"created_at":  user.CreatedAt,
		"connections": connected,
	})
}

type UpdateProfileInput struct {
	Username    string `json:"username"`
	Email       string `json:"email" validate:"omitempty,email"`
	FullName    string `json:"full_name"`
	AvatarURL   string `json:"avatar_url"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"omitempty,min=8"`
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if input.Username != "" && input.Username != user.Username {
		var existing models.User
		if err := uc.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil && existing.ID != user.ID {
			return utils.BadRequest(c, "Username already taken")
		}
		user.Username = input.Username
	}

	if input.Email != "" && input.Email != user.Email {
		var existing models.User
		if err := uc.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil && existing.ID != user.ID {
			return utils.BadRequest(c, "Email already taken")
		}
		user.Email = input.Email
	}

	if input.NewPassword != "" {
		if input.OldPassword == "" {
			return utils.BadRequest(c, "Old password is required to set new password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
			return utils.Unauthorized(c, "Invalid old password")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Profile updated successfully",
	})
}
