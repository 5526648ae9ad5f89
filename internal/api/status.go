package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerStatusEndpoints(rest *echo.Echo) {
	group := rest.Group("/status")

	group.GET("/", getStatus)
	group.GET("/ws/", streamStatus)
}

// getStatus returns the snapshot published by the last control cycle
func getStatus(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, statusTracker.Snapshot(), indentationChar)
}
