package interlock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/probes"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func createInterlock(line gpio.InputLine) (*Interlock, *time.Time) {
	lock := NewInterlock(line, 500)
	current := t0
	lock.now = func() time.Time { return current }
	return lock, &current
}

func TestPollActiveLow(t *testing.T) {
	// GIVEN a switch held low (on)
	lock, _ := createInterlock(gpio.NewFakeInput(0))

	// WHEN
	enabled := lock.Poll()

	// THEN
	assert.True(t, enabled)
	assert.True(t, lock.Enabled())
}

func TestPollReadFailureCountsAsOff(t *testing.T) {
	// GIVEN a switch line that cannot be read
	line := gpio.NewFakeInput(0)
	line.ReadError = assert.AnError
	lock, _ := createInterlock(line)

	// WHEN
	enabled := lock.Poll()

	// THEN
	assert.False(t, enabled)
}

func TestRunTimeAdvancesWhileEnabled(t *testing.T) {
	// GIVEN a system switched on at t0
	lock, clock := createInterlock(gpio.NewFakeInput(0))
	lock.Poll()

	// WHEN time passes
	*clock = t0.Add(90 * time.Second)

	// THEN
	assert.Equal(t, 90*time.Second, lock.RunTime())
}

func TestRunTimeFreezesWhenDisabled(t *testing.T) {
	// GIVEN a run that lasted 60 seconds
	lock, clock := createInterlock(gpio.NewFakeInput(0, 1))
	lock.Poll()
	*clock = t0.Add(60 * time.Second)

	// WHEN switched off
	lock.Poll()
	*clock = t0.Add(300 * time.Second)

	// THEN the run time stays at its final value
	assert.Equal(t, 60*time.Second, lock.RunTime())
}

func TestRunTimeRestartsOnReenable(t *testing.T) {
	// GIVEN a completed run
	lock, clock := createInterlock(gpio.NewFakeInput(0, 1, 0))
	lock.Poll()
	*clock = t0.Add(60 * time.Second)
	lock.Poll()

	// WHEN switched on again
	*clock = t0.Add(120 * time.Second)
	lock.Poll()
	*clock = t0.Add(150 * time.Second)

	// THEN the timer started over
	assert.Equal(t, 30*time.Second, lock.RunTime())
}

func TestCheckOverTempLatches(t *testing.T) {
	// GIVEN an enabled system
	lock, _ := createInterlock(gpio.NewFakeInput(0))
	lock.Poll()

	// WHEN a probe reaches the emergency threshold
	latched := lock.CheckOverTemp(225, 512, 180)

	// THEN
	assert.True(t, latched)
	assert.True(t, lock.Latched())

	// WHEN temperatures drop again
	latched = lock.CheckOverTemp(225, 480, 180)

	// THEN the latch stays set
	assert.True(t, latched)
}

func TestCheckOverTempIgnoresFaultedProbes(t *testing.T) {
	// GIVEN
	lock, _ := createInterlock(gpio.NewFakeInput(0))
	lock.Poll()

	// WHEN a probe reads the fault value
	latched := lock.CheckOverTemp(225, probes.FaultTemp, 180)

	// THEN a broken probe does not look like a fire
	assert.False(t, latched)
}

func TestLatchClearsOnSwitchOff(t *testing.T) {
	// GIVEN a latched system
	lock, _ := createInterlock(gpio.NewFakeInput(0, 1))
	lock.Poll()
	lock.CheckOverTemp(600)
	assert.True(t, lock.Latched())

	// WHEN the switch turns off
	lock.Poll()

	// THEN the latch clears
	assert.False(t, lock.Latched())
}
