package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opensmoker/smokerd/internal/util"
)

const subsystemBoard = "board"

// DefaultThermalZonePath is where the kernel exposes the SoC temperature
// on the Raspberry Pi.
const DefaultThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

// BoardCollector reports the temperature of the controller board itself.
// The enclosure sits right next to the smoker, a cooking SoC is worth an
// alert before it throttles.
type BoardCollector struct {
	thermalZonePath string

	cpuTemperature *prometheus.Desc
}

func NewBoardCollector(thermalZonePath string) *BoardCollector {
	return &BoardCollector{
		thermalZonePath: thermalZonePath,
		cpuTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemBoard, "cpu_temperature_celsius"),
			"SoC temperature of the controller board",
			nil, nil,
		),
	}
}

func (collector *BoardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.cpuTemperature
}

// Collect implements the collect function required of all prometheus collectors
func (collector *BoardCollector) Collect(ch chan<- prometheus.Metric) {
	// sysfs reports millidegrees
	value, err := util.ReadIntFromFile(collector.thermalZonePath)
	if err != nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(collector.cpuTemperature, prometheus.GaugeValue, float64(value)/1000.0)
}
