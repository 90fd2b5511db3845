package api

import (
	"net/http"

	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerConfigEndpoints(rest *echo.Echo) {
	rest.GET("/config/", getConfig)
}

// returns the effective configuration
func getConfig(c echo.Context) error {
	data := reprint.This(configuration.CurrentConfig)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
