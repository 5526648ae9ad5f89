package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/status"
)

func TestRenderRunningSystem(t *testing.T) {
	// GIVEN
	snap := status.Snapshot{
		AirTop:         228,
		AirBottom:      205,
		Meat1:          141,
		AirTarget:      225,
		Meat1Target:    190,
		SelectedTarget: setpoints.TargetAir,
		SystemEnabled:  true,
		RunTimeSeconds: 3661,
		HeaterOn:       true,
	}

	// WHEN
	frame := Render(snap)

	// THEN
	assert.Equal(t, Frame{
		"Timer: 01:01:01     ",
		"Air:  205-228 > 225*",
		"Meat: 141     > 190 ",
		"Sys:ON  H:ON  F:OFF ",
	}, frame)
}

func TestRenderIdleSystem(t *testing.T) {
	// GIVEN
	snap := status.Snapshot{
		AirTop:         72,
		AirBottom:      71,
		Meat1:          70,
		AirTarget:      225,
		Meat1Target:    190,
		SelectedTarget: setpoints.TargetMeat,
	}

	// WHEN
	frame := Render(snap)

	// THEN
	assert.Equal(t, Frame{
		"OpenSmoker          ",
		"Air:   71- 72 > 225 ",
		"Meat:  70     > 190*",
		"Sys:OFF H:OFF F:OFF ",
	}, frame)
}

func TestRenderEmergencyOverridesTitle(t *testing.T) {
	// GIVEN
	snap := status.Snapshot{
		AirTop:         520,
		AirBottom:      498,
		Meat1:          190,
		AirTarget:      225,
		Meat1Target:    190,
		SelectedTarget: setpoints.TargetAir,
		SystemEnabled:  true,
		Emergency:      true,
		RunTimeSeconds: 90,
	}

	// WHEN
	frame := Render(snap)

	// THEN
	assert.Equal(t, "** OVER TEMP **     ", frame[0])
	assert.Equal(t, "Sys:ON  H:OFF F:OFF ", frame[3])
}

func TestRenderFaultSentinelFitsLine(t *testing.T) {
	// GIVEN
	snap := status.Snapshot{
		AirTop:         999,
		AirBottom:      999,
		Meat1:          999,
		AirTarget:      300,
		Meat1Target:    210,
		SelectedTarget: setpoints.TargetAir,
	}

	// WHEN
	frame := Render(snap)

	// THEN
	for _, line := range frame {
		assert.Len(t, line, Width)
	}
	assert.Equal(t, "Air:  999-999 > 300*", frame[1])
}

func TestPadTruncatesOverlongLines(t *testing.T) {
	// GIVEN
	line := "0123456789012345678901234"

	// WHEN
	padded := pad(line)

	// THEN
	assert.Equal(t, "01234567890123456789", padded)
}
