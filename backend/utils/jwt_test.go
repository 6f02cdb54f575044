package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algomate/backend/config"
)

func whoamiApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, err := ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"id": id})
	})
	return app
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	token, err := GenerateJWTToken(42, cfg)
	require.NoError(t, err)

	app := whoamiApp(cfg)
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]uint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint(42), body["id"])
}

func TestJWTMissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := whoamiApp(cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken(42, &config.Config{JWTSecret: "one"})
	require.NoError(t, err)

	app := whoamiApp(&config.Config{JWTSecret: "another"})
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
