package controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"algomate/backend/config"
	"algomate/backend/utils"
)

// HealthController reports liveness and which external collaborators are
// configured. Missing credentials show up here instead of failing silently
// at request time.
type HealthController struct {
	Cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{Cfg: cfg}
}

func (hc *HealthController) Root(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"service": "algomate",
		"status":  "ok",
	})
}

func (hc *HealthController) Health(c *fiber.Ctx) error {
	checks := map[string]bool{
		"github_token":    hc.Cfg.GitHubToken != "",
		"judge_api":       hc.Cfg.JudgeAPIURL != "",
		"ocr_service":     hc.Cfg.OCRServiceURL != "",
		"analyze_service": hc.Cfg.AnalyzeServiceURL != "" && hc.Cfg.AnalyzeAPIKey != "",
	}

	services := fiber.Map{}
	missing := []string{}
	for name, configured := range checks {
		services[name] = configured
		if !configured {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"status":   "ok",
		"services": services,
		"missing":  missing,
	})
}
