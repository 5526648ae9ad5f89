package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opensmoker/smokerd/internal/status"
)

const subsystemControl = "control"

type ControlCollector struct {
	tracker *status.Tracker

	systemEnabled  *prometheus.Desc
	emergency      *prometheus.Desc
	heaterOn       *prometheus.Desc
	fanOn          *prometheus.Desc
	runTimeSeconds *prometheus.Desc
}

func NewControlCollector(tracker *status.Tracker) *ControlCollector {
	return &ControlCollector{
		tracker: tracker,
		systemEnabled: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "system_enabled"),
			"Whether the run switch currently enables the controller",
			nil, nil,
		),
		emergency: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "emergency"),
			"Whether the over-temperature latch is tripped",
			nil, nil,
		),
		heaterOn: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "heater_on"),
			"Whether the heater relay is energized",
			nil, nil,
		),
		fanOn: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "fan_on"),
			"Whether the circulation fan relay is energized",
			nil, nil,
		),
		runTimeSeconds: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemControl, "run_time_seconds"),
			"Elapsed run time of the current cook",
			nil, nil,
		),
	}
}

func (collector *ControlCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.systemEnabled
	ch <- collector.emergency
	ch <- collector.heaterOn
	ch <- collector.fanOn
	ch <- collector.runTimeSeconds
}

// Collect implements the collect function required of all prometheus collectors
func (collector *ControlCollector) Collect(ch chan<- prometheus.Metric) {
	snap := collector.tracker.Snapshot()
	ch <- prometheus.MustNewConstMetric(collector.systemEnabled, prometheus.GaugeValue, boolToGauge(snap.SystemEnabled))
	ch <- prometheus.MustNewConstMetric(collector.emergency, prometheus.GaugeValue, boolToGauge(snap.Emergency))
	ch <- prometheus.MustNewConstMetric(collector.heaterOn, prometheus.GaugeValue, boolToGauge(snap.HeaterOn))
	ch <- prometheus.MustNewConstMetric(collector.fanOn, prometheus.GaugeValue, boolToGauge(snap.FanOn))
	ch <- prometheus.MustNewConstMetric(collector.runTimeSeconds, prometheus.GaugeValue, float64(snap.RunTimeSeconds))
}
