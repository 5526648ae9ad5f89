package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"

	"github.com/opensmoker/smokerd/internal/configuration"
)

func registerConfigEndpoints(rest *echo.Echo) {
	group := rest.Group("/config")

	group.GET("/", getConfig)
}

// getConfig returns a deep copy of the active configuration with
// credentials blanked out
func getConfig(c echo.Context) error {
	data := reprint.This(configuration.CurrentConfig).(configuration.Configuration)
	if data.Mqtt.Password != "" {
		data.Mqtt.Password = "<redacted>"
	}
	if data.Alert.Mailgun.ApiKey != "" {
		data.Alert.Mailgun.ApiKey = "<redacted>"
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
