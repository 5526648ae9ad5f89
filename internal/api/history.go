package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// defaultHistoryWindow bounds history queries without a since parameter.
const defaultHistoryWindow = 1 * time.Hour

func registerHistoryEndpoints(rest *echo.Echo) {
	group := rest.Group("/history")

	group.GET("/", getHistory)
}

// getHistory returns recorded snapshots oldest first, starting at the
// RFC3339 since query parameter.
func getHistory(c echo.Context) error {
	since := time.Now().Add(-defaultHistoryWindow)
	if param := c.QueryParam("since"); param != "" {
		parsed, err := time.Parse(time.RFC3339, param)
		if err != nil {
			return c.JSONPretty(http.StatusBadRequest, &Result{
				Name:    "Bad request",
				Message: "since must be RFC3339: " + err.Error(),
			}, indentationChar)
		}
		since = parsed
	}

	snapshots, err := history.LoadSnapshotsSince(since)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, snapshots, indentationChar)
}
