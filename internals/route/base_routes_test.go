package routes

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disiplinku_backend/internals/configs"
	"disiplinku_backend/internals/databases/dbtest"
)

func TestHealth(t *testing.T) {
	db := dbtest.Open(t)
	fx := dbtest.NewFixture(t, db)
	cfg := &configs.Config{AppName: "Disiplinku", Env: "test", Timezone: "Asia/Riyadh"}

	startTime = time.Now()
	app := fiber.New()
	BaseRoutes(app, db, cfg)

	get := func() map[string]any {
		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body
	}

	body := get()
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Asia/Riyadh", body["timezone"])
	assert.Nil(t, body["active_year"])

	fx.Year("2024-2025", true)
	assert.Equal(t, "2024-2025", get()["active_year"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	db := dbtest.Open(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	app := fiber.New()
	BaseRoutes(app, db, &configs.Config{AppName: "Disiplinku"})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestBanner(t *testing.T) {
	app := fiber.New()
	BaseRoutes(app, dbtest.Open(t), &configs.Config{AppName: "Disiplinku"})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
