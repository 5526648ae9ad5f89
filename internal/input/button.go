package input

import (
	"time"
)

const (
	// DebounceTime is the minimum interval between accepted presses.
	DebounceTime = 50 * time.Millisecond
	// HoldTime is how long a button must stay pressed before it
	// starts auto-repeating.
	HoldTime = 1000 * time.Millisecond
	// RepeatRate is the interval between auto-repeat steps while held.
	RepeatRate = 100 * time.Millisecond

	// PressStep is applied once per discrete press, RepeatStep once
	// per repeat interval while held.
	PressStep  = 1
	RepeatStep = 5
)

type buttonState int

const (
	stateIdle buttonState = iota
	statePressed
	stateHeld
)

// ButtonRuntime tracks one increase/decrease button across input
// loop ticks. Hold and repeat timing is wall clock based, so the
// behavior is independent of loop jitter.
type ButtonRuntime struct {
	state        buttonState
	lastAccepted time.Time
	pressStart   time.Time
	lastRepeat   time.Time
}

// Evaluate advances the state machine with the current logical level
// (true = pressed) and returns the step magnitude to apply this tick.
// A release resets to idle unconditionally.
func (b *ButtonRuntime) Evaluate(pressed bool, now time.Time) int {
	if !pressed {
		b.state = stateIdle
		return 0
	}

	switch b.state {
	case stateIdle:
		if !b.lastAccepted.IsZero() && now.Sub(b.lastAccepted) < DebounceTime {
			return 0
		}
		b.state = statePressed
		b.lastAccepted = now
		b.pressStart = now
		return PressStep
	case statePressed:
		if now.Sub(b.pressStart) >= HoldTime {
			b.state = stateHeld
			b.lastRepeat = now
			return RepeatStep
		}
	case stateHeld:
		if now.Sub(b.lastRepeat) >= RepeatRate {
			b.lastRepeat = now
			return RepeatStep
		}
	}
	return 0
}

// MenuRuntime tracks the menu button, which fires once per debounced
// press and has no hold or repeat behavior.
type MenuRuntime struct {
	pressed      bool
	lastAccepted time.Time
}

// Evaluate returns true when a new press is accepted.
func (m *MenuRuntime) Evaluate(pressed bool, now time.Time) bool {
	if !pressed {
		m.pressed = false
		return false
	}
	if m.pressed {
		return false
	}
	if !m.lastAccepted.IsZero() && now.Sub(m.lastAccepted) < DebounceTime {
		return false
	}
	m.pressed = true
	m.lastAccepted = now
	return true
}
