package status

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"font-helper/core/config"
	"font-helper/core/dispatch"
	"font-helper/core/metrics"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, m *metrics.Metrics) *fiber.App {
	t.Helper()
	table := router.NewTable()
	require.NoError(t, NewFeature(m).Load(table))

	app := fiber.New()
	app.Use(dispatch.New(table, config.Default(), nil).Handle)
	return app
}

func TestHandleHealth(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "127.0.0.1:44950", body["addr"])
}

func TestHandleMetrics(t *testing.T) {
	m := metrics.New()
	m.ObserveRestart()
	app := setupTestApp(t, m)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "font_helper_restarts_total 1")
}

func TestMetricsDisabled(t *testing.T) {
	app := setupTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	f := NewFeature(nil)
	assert.Equal(t, "status", f.Name())
	assert.True(t, f.IsEnabled())
}
