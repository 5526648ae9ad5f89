package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/setpoints"
)

func createMonitor(menu, increase, decrease gpio.InputLine) (Monitor, *setpoints.Store) {
	store := setpoints.NewStore(
		configuration.SetpointLimitConfig{Min: 150, Max: 300, Default: 225},
		configuration.SetpointLimitConfig{Min: 120, Max: 210, Default: 190},
	)
	monitor := NewMonitor(50*time.Millisecond, menu, increase, decrease, store)
	return monitor, store
}

func TestMonitorIncreaseAdjustsSelectedTarget(t *testing.T) {
	// GIVEN the increase button pressed (active-low) for one tick
	menu := gpio.NewFakeInput(1)
	increase := gpio.NewFakeInput(0, 1)
	decrease := gpio.NewFakeInput(1)
	monitor, store := createMonitor(menu, increase, decrease)

	// WHEN
	monitor.Poll(t0)

	// THEN the air target moved by one
	assert.Equal(t, 226, store.Air())
	assert.Equal(t, 190, store.Meat())
}

func TestMonitorMenuSwitchesAdjustmentTarget(t *testing.T) {
	// GIVEN the menu button pressed on the first tick and the
	// decrease button pressed on the second
	menu := gpio.NewFakeInput(0, 1)
	increase := gpio.NewFakeInput(1)
	decrease := gpio.NewFakeInput(1, 0)
	monitor, store := createMonitor(menu, increase, decrease)

	// WHEN
	monitor.Poll(t0)
	monitor.Poll(t0.Add(100 * time.Millisecond))

	// THEN the meat target was adjusted instead of the air target
	assert.Equal(t, setpoints.TargetMeat, store.Selected())
	assert.Equal(t, 225, store.Air())
	assert.Equal(t, 189, store.Meat())
}

func TestMonitorReadFailureCountsAsReleased(t *testing.T) {
	// GIVEN a broken increase button line
	menu := gpio.NewFakeInput(1)
	increase := gpio.NewFakeInput(0)
	increase.ReadError = assert.AnError
	decrease := gpio.NewFakeInput(1)
	monitor, store := createMonitor(menu, increase, decrease)

	// WHEN
	monitor.Poll(t0)

	// THEN nothing was adjusted and the loop survived
	assert.Equal(t, 225, store.Air())
}

func TestMonitorHoldRepeatsAgainstStore(t *testing.T) {
	// GIVEN the increase button held down
	menu := gpio.NewFakeInput(1)
	increase := gpio.NewFakeInput(0)
	decrease := gpio.NewFakeInput(1)
	monitor, store := createMonitor(menu, increase, decrease)

	// WHEN evaluated every 50ms for 1.2s
	for elapsed := time.Duration(0); elapsed <= 1200*time.Millisecond; elapsed += 50 * time.Millisecond {
		monitor.Poll(t0.Add(elapsed))
	}

	// THEN +1 on press and +5 per repeat landed on the air target
	assert.Equal(t, 225+PressStep+3*RepeatStep, store.Air())
}
