package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"algomate/backend/cache"
	"algomate/backend/config"
	"algomate/backend/controllers"
	"algomate/backend/middleware"
	"algomate/backend/platform"
	"algomate/backend/resume"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	store := cache.NewGormStore(db)
	policy := cache.NewPolicy(store, cfg.CacheTTL, logger)

	fetchers := map[string]platform.Fetcher{
		platform.PlatformGitHub: platform.NewGitHubClient(cfg.GitHubAPIURL, cfg.GitHubGraphQLURL, cfg.GitHubToken, logger),
		platform.PlatformJudge:  platform.NewJudgeClient(cfg.JudgeAPIURL, cfg.JudgeAPIKey, logger),
	}

	analyzer := resume.NewAnalyzer(cfg.OCRServiceURL, cfg.AnalyzeServiceURL, cfg.AnalyzeAPIKey, logger)
	resumeService := resume.NewService(db, analyzer, store, logger)

	// Health routes
	healthController := controllers.NewHealthController(cfg)
	app.Get("/", healthController.Root)
	app.Get("/health", healthController.Health)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Platform connection routes
	platformController := controllers.NewPlatformController(db, cfg, store)
	platforms := app.Group("/api/platforms", authMiddleware)
	platforms.Get("/", platformController.List)
	platforms.Post("/connect", platformController.Connect)
	platforms.Delete("/:platform", platformController.Disconnect)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(db, cfg, policy, fetchers, logger)
	dashboard := app.Group("/api/dashboard", authMiddleware)
	dashboard.Get("/overview", dashboardController.GetOverview)
	dashboard.Post("/refresh", dashboardController.Refresh)
	dashboard.Get("/:platform/calendar", dashboardController.GetCalendar)
	dashboard.Get("/:platform/summary", dashboardController.GetSummary)

	// Insights routes
	insightsController := controllers.NewInsightsController(db, cfg, policy, fetchers, logger)
	insights := app.Group("/api/insights", authMiddleware)
	insights.Get("/topics", insightsController.GetTopics)
	insights.Get("/submissions", insightsController.GetSubmissions)
	insights.Get("/momentum", insightsController.GetMomentum)
	insights.Get("/recommendations", insightsController.GetRecommendations)

	// Resume routes
	resumeController := controllers.NewResumeController(db, cfg, resumeService)
	resumes := app.Group("/api/resume", authMiddleware)
	resumes.Get("/", resumeController.List)
	resumes.Post("/analyze", resumeController.Analyze)
	resumes.Get("/:id", resumeController.GetStatus)
}
