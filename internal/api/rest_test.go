package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/controller"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createService(t *testing.T) *echo.Echo {
	service, err := CreateRestService(prometheus.NewRegistry())
	require.NoError(t, err)
	return service
}

func get(t *testing.T, service *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	service.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	service := createService(t)

	// WHEN
	rec := get(t, service, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStatus(t *testing.T) {
	// GIVEN
	controller.SnapshotMap.Set("api-test", controller.Snapshot{
		Id:     "api-test",
		Sample: 512,
		Duty:   50,
		Pwm:    pwm.State{Compare: 127, Mode: pwm.ModeActive},
	})
	t.Cleanup(func() { controller.SnapshotMap.Remove("api-test") })
	service := createService(t)

	// WHEN
	rec := get(t, service, "/status/api-test/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "api-test", body["id"])
	assert.EqualValues(t, 50, body["duty"])
	assert.Equal(t, map[string]interface{}{"compare": 127.0, "mode": "active"}, body["pwm"])
}

func TestGetStatuses(t *testing.T) {
	// GIVEN
	controller.SnapshotMap.Set("api-test", controller.Snapshot{Id: "api-test", Duty: 100})
	t.Cleanup(func() { controller.SnapshotMap.Remove("api-test") })
	service := createService(t)

	// WHEN
	rec := get(t, service, "/status")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]controller.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "api-test", body["api-test"].Id)
}

func TestGetStatusNotFound(t *testing.T) {
	// GIVEN
	service := createService(t)

	// WHEN
	rec := get(t, service, "/status/missing/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No item with id 'missing' found")
}

func TestGetConfig(t *testing.T) {
	// GIVEN
	previous := configuration.CurrentConfig
	t.Cleanup(func() { configuration.CurrentConfig = previous })
	configuration.CurrentConfig.Analog.FullScale = 4095
	service := createService(t)

	// WHEN
	rec := get(t, service, "/config/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var body configuration.Configuration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint32(4095), body.Analog.FullScale)
}
