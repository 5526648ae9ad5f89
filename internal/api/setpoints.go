package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opensmoker/smokerd/internal/setpoints"
)

type setpointUpdate struct {
	Value int `json:"value"`
}

func registerSetpointEndpoints(rest *echo.Echo) {
	group := rest.Group("/setpoint")

	group.GET("/", getSetpoints)
	group.GET("/:"+urlParamId+"/", getSetpoint)
	group.PUT("/:"+urlParamId+"/", updateSetpoint)
}

func getSetpoints(c echo.Context) error {
	data := map[string]setpoints.Setpoint{
		string(setpoints.TargetAir):  setpointStore.Get(setpoints.TargetAir),
		string(setpoints.TargetMeat): setpointStore.Get(setpoints.TargetMeat),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSetpoint(c echo.Context) error {
	id := c.Param(urlParamId)

	target, ok := parseTarget(id)
	if !ok {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, setpointStore.Get(target), indentationChar)
}

// updateSetpoint applies a remote override. Out of range values stick to
// the nearest limit, the response carries what was actually applied.
func updateSetpoint(c echo.Context) error {
	id := c.Param(urlParamId)

	target, ok := parseTarget(id)
	if !ok {
		return returnNotFound(c, id)
	}

	var update setpointUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSONPretty(http.StatusBadRequest, &Result{
			Name:    "Bad request",
			Message: err.Error(),
		}, indentationChar)
	}

	setpointStore.Set(target, update.Value)
	return c.JSONPretty(http.StatusOK, setpointStore.Get(target), indentationChar)
}

func parseTarget(id string) (setpoints.Target, bool) {
	switch id {
	case string(setpoints.TargetAir):
		return setpoints.TargetAir, true
	case string(setpoints.TargetMeat):
		return setpoints.TargetMeat, true
	}
	return "", false
}
