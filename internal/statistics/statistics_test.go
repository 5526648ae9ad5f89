package statistics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/probes"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/testingutils"
)

func TestProbeCollectorReportsTemperatures(t *testing.T) {
	// GIVEN
	airTop := &testingutils.FakeProbe{Id: "air_top", Temp: 228}
	meat := &testingutils.FakeProbe{Id: "meat_1", Temp: probes.FaultTemp, IsFaulted: true}
	collector := NewProbeCollector([]probes.Probe{airTop, meat})

	// WHEN
	expected := `# HELP smokerd_probe_faulted Whether the probe currently reports the fault sentinel
# TYPE smokerd_probe_faulted gauge
smokerd_probe_faulted{id="air_top"} 0
smokerd_probe_faulted{id="meat_1"} 1
# HELP smokerd_probe_temperature_fahrenheit Smoothed temperature of the probe
# TYPE smokerd_probe_temperature_fahrenheit gauge
smokerd_probe_temperature_fahrenheit{id="air_top"} 228
smokerd_probe_temperature_fahrenheit{id="meat_1"} 999
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected))

	// THEN
	assert.NoError(t, err)
}

func TestSetpointCollectorReportsTargets(t *testing.T) {
	// GIVEN
	store := setpoints.NewStore(
		configuration.SetpointLimitConfig{Min: 150, Max: 300, Default: 225},
		configuration.SetpointLimitConfig{Min: 120, Max: 210, Default: 190},
	)
	collector := NewSetpointCollector(store)

	// WHEN
	expected := `# HELP smokerd_setpoint_selected Whether the front panel buttons currently act on this setpoint
# TYPE smokerd_setpoint_selected gauge
smokerd_setpoint_selected{id="air"} 1
smokerd_setpoint_selected{id="meat"} 0
# HELP smokerd_setpoint_target_fahrenheit Current target temperature of the setpoint
# TYPE smokerd_setpoint_target_fahrenheit gauge
smokerd_setpoint_target_fahrenheit{id="air"} 225
smokerd_setpoint_target_fahrenheit{id="meat"} 190
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected))

	// THEN
	assert.NoError(t, err)
}

func TestControlCollectorReportsControllerState(t *testing.T) {
	// GIVEN
	tracker := status.NewTracker()
	tracker.Update(status.Snapshot{
		SystemEnabled:  true,
		HeaterOn:       true,
		RunTimeSeconds: 61,
	})
	collector := NewControlCollector(tracker)

	// WHEN
	expected := `# HELP smokerd_control_emergency Whether the over-temperature latch is tripped
# TYPE smokerd_control_emergency gauge
smokerd_control_emergency 0
# HELP smokerd_control_fan_on Whether the circulation fan relay is energized
# TYPE smokerd_control_fan_on gauge
smokerd_control_fan_on 0
# HELP smokerd_control_heater_on Whether the heater relay is energized
# TYPE smokerd_control_heater_on gauge
smokerd_control_heater_on 1
# HELP smokerd_control_run_time_seconds Elapsed run time of the current cook
# TYPE smokerd_control_run_time_seconds gauge
smokerd_control_run_time_seconds 61
# HELP smokerd_control_system_enabled Whether the run switch currently enables the controller
# TYPE smokerd_control_system_enabled gauge
smokerd_control_system_enabled 1
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected))

	// THEN
	assert.NoError(t, err)
}
