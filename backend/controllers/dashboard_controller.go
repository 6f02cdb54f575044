package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"algomate/backend/analytics"
	"algomate/backend/cache"
	"algomate/backend/config"
	"algomate/backend/middleware"
	"algomate/backend/models"
	"algomate/backend/platform"
	"algomate/backend/utils"
)

var errNotConnected = errors.New("platform not connected")

// DashboardController serves calendar and summary views assembled from cached
// platform snapshots. Reads go through the stale-while-revalidate policy, so
// a degraded upstream still yields the last known data.
type DashboardController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Policy   *cache.Policy
	Fetchers map[string]platform.Fetcher
	Logger   *log.Logger
}

func NewDashboardController(db *gorm.DB, cfg *config.Config, policy *cache.Policy, fetchers map[string]platform.Fetcher, logger *log.Logger) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg, Policy: policy, Fetchers: fetchers, Logger: logger}
}

// loadSnapshot resolves the user's handle for the platform and reads the
// snapshot through the cache policy. The bool reports staleness.
func (dc *DashboardController) loadSnapshot(ctx context.Context, userID uint, tag string) (platform.Snapshot, bool, error) {
	var snap platform.Snapshot

	fetcher, ok := dc.Fetchers[tag]
	if !ok {
		return snap, false, errNotConnected
	}

	var conn models.PlatformConnection
	if err := dc.DB.Where("user_id = ? AND platform = ?", userID, tag).First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snap, false, errNotConnected
		}
		return snap, false, err
	}

	payload, stale, err := dc.Policy.Get(ctx, userID, tag, func(ctx context.Context) ([]byte, error) {
		fresh, err := fetcher.Fetch(ctx, conn.Handle)
		if err != nil {
			return nil, err
		}
		return json.Marshal(fresh)
	})
	if err != nil {
		return snap, false, err
	}
	if err := json.Unmarshal(payload, &snap); err != nil {
		return snap, false, err
	}
	return snap, stale, nil
}

// platformError maps the snapshot error taxonomy onto HTTP responses.
func platformError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errNotConnected):
		return utils.NotFound(c, "Platform not connected")
	case errors.Is(err, platform.ErrReconnectRequired):
		return utils.Forbidden(c, "Platform authorization expired, reconnect required")
	case errors.Is(err, platform.ErrUnavailable):
		return utils.ServiceUnavailable(c, "Platform temporarily unavailable and no cached data exists")
	default:
		return utils.InternalServerError(c, "Could not load platform data")
	}
}

// GetCalendar returns the dense activity calendar for one platform and year,
// padded to whole weeks for heat-map rendering.
func (dc *DashboardController) GetCalendar(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	tag := c.Params("platform")

	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(time.Now().UTC().Year())))
	if err != nil || year < 2000 || year > 2100 {
		return utils.BadRequest(c, "Invalid year")
	}

	snap, stale, err := dc.loadSnapshot(c.Context(), userID, tag)
	if err != nil {
		return platformError(c, err)
	}

	days := analytics.NormalizeCalendar(snap.Calendar, year, analytics.DefaultConfig)
	grid := analytics.PadToWeekGrid(days)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"platform": tag,
		"year":     year,
		"days":     grid,
	}, fiber.Map{
		"stale":      stale,
		"fetched_at": snap.FetchedAt,
	})
}

// GetSummary returns scalar activity statistics for one platform.
func (dc *DashboardController) GetSummary(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	tag := c.Params("platform")

	snap, stale, err := dc.loadSnapshot(c.Context(), userID, tag)
	if err != nil {
		return platformError(c, err)
	}

	today := time.Now().UTC()
	days := analytics.NormalizeCalendar(snap.Calendar, today.Year(), analytics.DefaultConfig)
	summary := analytics.Summarize(days, today)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"platform": tag,
		"profile":  snap.Profile,
		"summary":  summary,
	}, fiber.Map{
		"stale":      stale,
		"fetched_at": snap.FetchedAt,
	})
}

// GetOverview assembles every connected platform into a single view. A failed
// platform degrades to an error entry instead of failing the whole response.
func (dc *DashboardController) GetOverview(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var connections []models.PlatformConnection
	if err := dc.DB.Where("user_id = ?", userID).Find(&connections).Error; err != nil {
		return utils.InternalServerError(c, "Could not query connections")
	}

	today := time.Now().UTC()
	platforms := fiber.Map{}
	failures := fiber.Map{}

	for _, conn := range connections {
		snap, stale, err := dc.loadSnapshot(c.Context(), userID, conn.Platform)
		if err != nil {
			failures[conn.Platform] = overviewFailure(err)
			continue
		}
		days := analytics.NormalizeCalendar(snap.Calendar, today.Year(), analytics.DefaultConfig)
		platforms[conn.Platform] = fiber.Map{
			"profile": snap.Profile,
			"summary": analytics.Summarize(days, today),
			"stale":   stale,
		}
	}

	// Resume insights live under their own tag and have no fetcher; they are
	// only ever populated by the background pipeline.
	if entry, err := dc.Policy.Store.Get(userID, platform.PlatformResume); err == nil {
		var resume map[string]interface{}
		if err := json.Unmarshal(entry.Payload, &resume); err == nil {
			platforms[platform.PlatformResume] = resume
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"platforms": platforms,
		"errors":    failures,
	})
}

func overviewFailure(err error) string {
	switch {
	case errors.Is(err, platform.ErrReconnectRequired):
		return "reconnect_required"
	case errors.Is(err, platform.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// Refresh force-fetches every connected platform in parallel, bypassing the
// freshness check, and writes the results through the cache store.
func (dc *DashboardController) Refresh(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var connections []models.PlatformConnection
	if err := dc.DB.Where("user_id = ?", userID).Find(&connections).Error; err != nil {
		return utils.InternalServerError(c, "Could not query connections")
	}

	handles := make(map[string]string, len(connections))
	for _, conn := range connections {
		handles[conn.Platform] = conn.Handle
	}

	snapshots, errs := platform.FetchAll(c.Context(), dc.Fetchers, handles)

	refreshed := make([]string, 0, len(snapshots))
	for tag, snap := range snapshots {
		data, err := json.Marshal(snap)
		if err != nil {
			dc.Logger.Printf("refresh: encode %s snapshot for user %d: %v", tag, userID, err)
			continue
		}
		if err := dc.Policy.Store.Put(userID, tag, data, time.Now().UTC()); err != nil {
			dc.Logger.Printf("refresh: cache write %s for user %d: %v", tag, userID, err)
			continue
		}
		refreshed = append(refreshed, tag)
	}

	failures := fiber.Map{}
	for tag, err := range errs {
		failures[tag] = overviewFailure(err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"refreshed": refreshed,
		"errors":    failures,
	})
}
