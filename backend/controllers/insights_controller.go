package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"algomate/backend/analytics"
	"algomate/backend/cache"
	"algomate/backend/config"
	"algomate/backend/middleware"
	"algomate/backend/platform"
	"algomate/backend/utils"
)

// InsightsController derives mastery, submission-pattern, momentum and
// recommendation views from the judge snapshot. Every view is recomputed from
// the cached snapshot on read; nothing derived is persisted.
type InsightsController struct {
	dashboard *DashboardController
}

func NewInsightsController(db *gorm.DB, cfg *config.Config, policy *cache.Policy, fetchers map[string]platform.Fetcher, logger *log.Logger) *InsightsController {
	return &InsightsController{
		dashboard: NewDashboardController(db, cfg, policy, fetchers, logger),
	}
}

// GetTopics returns the ranked topic mastery table.
func (ic *InsightsController) GetTopics(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	snap, stale, err := ic.dashboard.loadSnapshot(c.Context(), userID, platform.PlatformJudge)
	if err != nil {
		return platformError(c, err)
	}

	cfg := analytics.DefaultConfig
	topics := analytics.RankTopics(snap.TopicCounts, cfg.TopTopics, cfg)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"topics":            topics,
		"threshold_version": cfg.Version,
	}, fiber.Map{
		"stale": stale,
	})
}

// GetSubmissions returns submission-pattern statistics.
func (ic *InsightsController) GetSubmissions(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	snap, stale, err := ic.dashboard.loadSnapshot(c.Context(), userID, platform.PlatformJudge)
	if err != nil {
		return platformError(c, err)
	}

	patterns := analytics.AnalyzeSubmissions(snap.Submissions, analytics.DefaultConfig)

	return utils.Success(c, fiber.StatusOK, patterns, fiber.Map{
		"stale": stale,
	})
}

// GetMomentum returns streaks and the productivity trend.
func (ic *InsightsController) GetMomentum(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	snap, stale, err := ic.dashboard.loadSnapshot(c.Context(), userID, platform.PlatformJudge)
	if err != nil {
		return platformError(c, err)
	}

	momentum := analytics.CalcMomentum(snap.Calendar, time.Now().UTC(), analytics.DefaultConfig)

	return utils.Success(c, fiber.StatusOK, momentum, fiber.Map{
		"stale": stale,
	})
}

// GetRecommendations returns the heuristic next-milestone estimate.
func (ic *InsightsController) GetRecommendations(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	snap, stale, err := ic.dashboard.loadSnapshot(c.Context(), userID, platform.PlatformJudge)
	if err != nil {
		return platformError(c, err)
	}

	cfg := analytics.DefaultConfig
	mastery := analytics.RankTopics(snap.TopicCounts, cfg.TopTopics, cfg)
	momentum := analytics.CalcMomentum(snap.Calendar, time.Now().UTC(), cfg)
	rec := analytics.Predict(mastery, momentum, cfg)

	return utils.Success(c, fiber.StatusOK, rec, fiber.Map{
		"stale": stale,
	})
}
