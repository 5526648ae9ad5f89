package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opensmoker/smokerd/internal/setpoints"
)

const subsystemSetpoint = "setpoint"

type SetpointCollector struct {
	store *setpoints.Store

	target   *prometheus.Desc
	selected *prometheus.Desc
}

func NewSetpointCollector(store *setpoints.Store) *SetpointCollector {
	return &SetpointCollector{
		store: store,
		target: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSetpoint, "target_fahrenheit"),
			"Current target temperature of the setpoint",
			[]string{"id"}, nil,
		),
		selected: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSetpoint, "selected"),
			"Whether the front panel buttons currently act on this setpoint",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SetpointCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.target
	ch <- collector.selected
}

// Collect implements the collect function required of all prometheus collectors
func (collector *SetpointCollector) Collect(ch chan<- prometheus.Metric) {
	selected := collector.store.Selected()
	for _, target := range []setpoints.Target{setpoints.TargetAir, setpoints.TargetMeat} {
		id := string(target)
		ch <- prometheus.MustNewConstMetric(collector.target, prometheus.GaugeValue, float64(collector.store.Get(target).Value), id)
		ch <- prometheus.MustNewConstMetric(collector.selected, prometheus.GaugeValue, boolToGauge(target == selected), id)
	}
}
