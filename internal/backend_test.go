package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/probes"
)

func createDeviceConfig() configuration.Configuration {
	return configuration.Configuration{
		Probes: []configuration.ProbeConfig{
			{ID: configuration.ProbeAirTop, Sck: 11, Cs: 8, So: 9},
			{ID: configuration.ProbeAirBottom, Sck: 16, Cs: 7, So: 20},
			{ID: configuration.ProbeMeat1, Sck: 13, Cs: 5, So: 19},
		},
		Buttons: configuration.ButtonsConfig{Menu: 26, Increase: 22, Decrease: 27},
		Switch:  configuration.SwitchConfig{Pin: 17},
		Relays:  configuration.RelaysConfig{Heater: 23, Fan: 24},
	}
}

func TestBuildDevicesClaimsConfiguredLines(t *testing.T) {
	// GIVEN
	chip := gpio.NewFakeChip()
	config := createDeviceConfig()

	// WHEN
	devices, err := BuildDevices(chip, config)

	// THEN every probe is registered and wired to its own lines
	assert.NoError(t, err)
	assert.NotNil(t, devices.AirTop)
	assert.NotNil(t, devices.AirBottom)
	assert.NotNil(t, devices.Meat)
	for _, id := range []string{configuration.ProbeAirTop, configuration.ProbeAirBottom, configuration.ProbeMeat1} {
		_, ok := probes.ProbeMap.Get(id)
		assert.True(t, ok, "probe %s not registered", id)
	}

	// THEN the buttons and the switch are claimed
	assert.Contains(t, chip.Inputs, 26)
	assert.Contains(t, chip.Inputs, 22)
	assert.Contains(t, chip.Inputs, 27)
	assert.Contains(t, chip.Inputs, 17)

	// THEN both relays are claimed and start de-energized
	assert.Contains(t, chip.Outputs, 23)
	assert.Contains(t, chip.Outputs, 24)
	assert.False(t, devices.Heater.Get())
	assert.False(t, devices.Fan.Get())
}

func TestBuildDevicesRequiresControlProbes(t *testing.T) {
	// GIVEN a config that lacks the meat probe
	chip := gpio.NewFakeChip()
	config := createDeviceConfig()
	config.Probes = config.Probes[:2]

	// WHEN
	devices, err := BuildDevices(chip, config)

	// THEN
	assert.Nil(t, devices)
	assert.ErrorContains(t, err, configuration.ProbeMeat1)
}

func TestBuildDevicesRegistersMonitoringProbes(t *testing.T) {
	// GIVEN an additional probe that no control input uses
	chip := gpio.NewFakeChip()
	config := createDeviceConfig()
	config.Probes = append(config.Probes, configuration.ProbeConfig{
		ID: "meat_2", Sck: 6, Cs: 12, So: 25,
	})

	// WHEN
	devices, err := BuildDevices(chip, config)

	// THEN the probe is measured alongside the control probes
	assert.NoError(t, err)
	assert.NotNil(t, devices)
	probe, ok := probes.ProbeMap.Get("meat_2")
	assert.True(t, ok)
	assert.Equal(t, "meat_2", probe.GetId())
}

func TestDevicesCloseReleasesLines(t *testing.T) {
	// GIVEN
	chip := gpio.NewFakeChip()
	devices, err := BuildDevices(chip, createDeviceConfig())
	assert.NoError(t, err)

	// WHEN
	devices.Close()

	// THEN every claimed line is closed
	for offset, input := range chip.Inputs {
		assert.True(t, input.Closed, "input %d not closed", offset)
	}
	for offset, output := range chip.Outputs {
		assert.True(t, output.Closed, "output %d not closed", offset)
	}
}
