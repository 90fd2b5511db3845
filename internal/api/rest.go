package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService builds the read-only status API. Request metrics are
// registered with registerer.
func CreateRestService(registerer prometheus.Registerer) (*echo.Echo, error) {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())

	metrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "fanduty",
		Subsystem:  "api",
		Registerer: registerer,
	}.ToMiddleware()
	if err != nil {
		return nil, err
	}
	echoRest.Use(metrics)

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest)
	registerConfigEndpoints(echoRest)

	return echoRest, nil
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}
