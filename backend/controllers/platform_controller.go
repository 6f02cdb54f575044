package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"algomate/backend/cache"
	"algomate/backend/config"
	"algomate/backend/middleware"
	"algomate/backend/models"
	"algomate/backend/utils"
)

// PlatformController manages the user's connections to external coding
// platforms. Connecting or reconnecting invalidates the platform's cache so
// the next dashboard read fetches under the new handle.
type PlatformController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Store cache.Store
}

func NewPlatformController(db *gorm.DB, cfg *config.Config, store cache.Store) *PlatformController {
	return &PlatformController{DB: db, Cfg: cfg, Store: store}
}

type ConnectInput struct {
	Platform string `json:"platform" validate:"required,oneof=github judge"`
	Handle   string `json:"handle" validate:"required,min=1,max=128"`
}

// Connect links or relinks a platform handle. One connection exists per
// (user, platform) pair; reconnecting overwrites the handle.
func (pc *PlatformController) Connect(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input ConnectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	conn := models.PlatformConnection{
		UserID:   userID,
		Platform: input.Platform,
		Handle:   input.Handle,
	}
	err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{"handle", "updated_at"}),
	}).Create(&conn).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not save connection")
	}

	// Stale data under the previous handle must not survive a reconnect.
	if err := pc.Store.Delete(userID, input.Platform); err != nil && !errors.Is(err, cache.ErrMiss) {
		return utils.InternalServerError(c, "Could not reset cached data")
	}

	return utils.Created(c, fiber.Map{
		"platform": conn.Platform,
		"handle":   conn.Handle,
	})
}

// Disconnect removes the connection and hard-deletes the platform's cached
// snapshot, so no orphaned data survives.
func (pc *PlatformController) Disconnect(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	tag := c.Params("platform")

	result := pc.DB.Unscoped().
		Where("user_id = ? AND platform = ?", userID, tag).
		Delete(&models.PlatformConnection{})
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not remove connection")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Platform not connected")
	}

	if err := pc.Store.Delete(userID, tag); err != nil && !errors.Is(err, cache.ErrMiss) {
		return utils.InternalServerError(c, "Could not remove cached data")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Platform disconnected",
	})
}

// List returns every connection with its cache freshness.
func (pc *PlatformController) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var connections []models.PlatformConnection
	if err := pc.DB.Where("user_id = ?", userID).Find(&connections).Error; err != nil {
		return utils.InternalServerError(c, "Could not query connections")
	}

	items := make([]fiber.Map, 0, len(connections))
	for _, conn := range connections {
		item := fiber.Map{
			"platform": conn.Platform,
			"handle":   conn.Handle,
			"cached":   false,
		}
		if entry, err := pc.Store.Get(userID, conn.Platform); err == nil {
			item["cached"] = true
			item["last_updated"] = entry.LastUpdated
		}
		items = append(items, item)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"connections": items,
	})
}
