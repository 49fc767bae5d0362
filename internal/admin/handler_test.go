package admin

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin/ping", RequireAdminAPIKey(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestRequireAdminAPIKey(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "sekrit")
	app := newGatedApp()

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Key", "sekrit")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminAPIKeyUnset(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "")
	app := newGatedApp()

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("X-Admin-Key", "anything")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
