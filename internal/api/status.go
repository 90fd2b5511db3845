package api

import (
	"net/http"

	"github.com/fanduty/fanduty/internal/controller"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerStatusEndpoints(rest *echo.Echo) {
	group := rest.Group("/status")

	group.GET("/", getStatuses)
	group.GET("/:"+urlParamId+"/", getStatus)
}

// returns the latest snapshot of every running control loop
func getStatuses(c echo.Context) error {
	data := reprint.This(controller.SnapshotMap.Items())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getStatus(c echo.Context) error {
	id := c.Param(urlParamId)
	data, exists := controller.SnapshotMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
