package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/probes"
)

type probeDto struct {
	Config  configuration.ProbeConfig `json:"config"`
	Value   int                       `json:"value"`
	Faulted bool                      `json:"faulted"`
}

func registerProbeEndpoints(rest *echo.Echo) {
	group := rest.Group("/probe")

	group.GET("/", getProbes)
	group.GET("/:"+urlParamId+"/", getProbe)
}

func getProbes(c echo.Context) error {
	data := map[string]probeDto{}
	for id, probe := range probes.ProbeMap.Items() {
		data[id] = toProbeDto(probe)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getProbe(c echo.Context) error {
	id := c.Param(urlParamId)

	probe, exists := probes.ProbeMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, toProbeDto(probe), indentationChar)
	}
}

func toProbeDto(probe probes.Probe) probeDto {
	return probeDto{
		Config:  probe.GetConfig(),
		Value:   probe.Value(),
		Faulted: probe.Faulted(),
	}
}
