package routes

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algomate/backend/config"
)

func testApp() *fiber.App {
	cfg := &config.Config{
		JWTSecret:   "test-secret",
		JudgeAPIURL: "https://judge.example/api",
		CacheTTL:    2 * time.Hour,
	}
	logger := log.New(io.Discard, "", 0)

	// The DB is only reached behind the auth middleware, so wiring checks run
	// without one.
	app := fiber.New()
	SetupRoutes(app, nil, cfg, logger)
	return app
}

func TestHealthEndpoints(t *testing.T) {
	app := testApp()

	for _, path := range []string{"/", "/health"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestHealthReportsMissingServices(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)

	var body struct {
		Data struct {
			Missing []string `json:"missing"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Data.Missing, "github_token")
	assert.Contains(t, body.Data.Missing, "ocr_service")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := testApp()

	protected := []struct {
		method string
		path   string
	}{
		{"GET", "/api/user/profile"},
		{"GET", "/api/platforms/"},
		{"POST", "/api/platforms/connect"},
		{"GET", "/api/dashboard/overview"},
		{"GET", "/api/dashboard/github/calendar"},
		{"GET", "/api/insights/topics"},
		{"POST", "/api/resume/analyze"},
	}

	for _, route := range protected {
		resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}
