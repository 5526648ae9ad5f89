package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opensmoker/smokerd/internal/probes"
)

const subsystemProbe = "probe"

type ProbeCollector struct {
	probes []probes.Probe

	temperature *prometheus.Desc
	faulted     *prometheus.Desc
}

func NewProbeCollector(probes []probes.Probe) *ProbeCollector {
	return &ProbeCollector{
		probes: probes,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemProbe, "temperature_fahrenheit"),
			"Smoothed temperature of the probe",
			[]string{"id"}, nil,
		),
		faulted: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemProbe, "faulted"),
			"Whether the probe currently reports the fault sentinel",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ProbeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.faulted
}

// Collect implements the collect function required of all prometheus collectors
func (collector *ProbeCollector) Collect(ch chan<- prometheus.Metric) {
	for _, probe := range collector.probes {
		probeId := probe.GetId()
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, float64(probe.Value()), probeId)
		ch <- prometheus.MustNewConstMetric(collector.faulted, prometheus.GaugeValue, boolToGauge(probe.Faulted()), probeId)
	}
}

func boolToGauge(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
