package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/opensmoker/smokerd/internal/persistence"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/status"
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

var (
	statusTracker *status.Tracker
	setpointStore *setpoints.Store
	history       persistence.Persistence
)

func CreateRestService(tracker *status.Tracker, store *setpoints.Store, persistence persistence.Persistence) *echo.Echo {
	statusTracker = tracker
	setpointStore = store
	history = persistence

	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest)
	registerProbeEndpoints(echoRest)
	registerSetpointEndpoints(echoRest)
	registerHistoryEndpoints(echoRest)
	registerConfigEndpoints(echoRest)

	return echoRest
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

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
