// Package setpoints owns the target temperatures and the front panel
// selection between them. All access goes through one Store so button
// presses, remote overrides and the control loop agree on a single
// clamped value.
package setpoints

import (
	"sync"

	"github.com/opensmoker/smokerd/internal/configuration"
)

// Target names one of the two adjustable setpoints.
type Target string

const (
	TargetAir  Target = "air"
	TargetMeat Target = "meat"
)

type Setpoint struct {
	Value int `json:"value"`
	Min   int `json:"min"`
	Max   int `json:"max"`
}

type Store struct {
	mu       sync.RWMutex
	air      Setpoint
	meat     Setpoint
	selected Target
}

func NewStore(air configuration.SetpointLimitConfig, meat configuration.SetpointLimitConfig) *Store {
	return &Store{
		air: Setpoint{
			Value: clamp(air.Default, air.Min, air.Max),
			Min:   air.Min,
			Max:   air.Max,
		},
		meat: Setpoint{
			Value: clamp(meat.Default, meat.Min, meat.Max),
			Min:   meat.Min,
			Max:   meat.Max,
		},
		selected: TargetAir,
	}
}

func clamp(value int, min int, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Air returns the current air chamber target in fahrenheit.
func (s *Store) Air() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.air.Value
}

// Meat returns the current meat target in fahrenheit.
func (s *Store) Meat() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meat.Value
}

// Get returns a copy of the named setpoint.
func (s *Store) Get(target Target) Setpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if target == TargetMeat {
		return s.meat
	}
	return s.air
}

// Selected returns the target the front panel buttons currently act on.
func (s *Store) Selected() Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// ToggleSelection flips the front panel selection and returns the
// newly selected target.
func (s *Store) ToggleSelection() Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == TargetAir {
		s.selected = TargetMeat
	} else {
		s.selected = TargetAir
	}
	return s.selected
}

// Set replaces the named setpoint, clamped to its limits, and
// returns the value that was actually applied. Out of range requests
// stick to the nearest limit instead of being rejected.
func (s *Store) Set(target Target, value int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(target, value)
}

// Adjust moves the named setpoint by delta, clamped to its limits,
// and returns the value that was actually applied.
func (s *Store) Adjust(target Target, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == TargetMeat {
		return s.setLocked(target, s.meat.Value+delta)
	}
	return s.setLocked(target, s.air.Value+delta)
}

// AdjustSelected moves the currently selected setpoint by delta and
// returns which target was adjusted along with the applied value.
func (s *Store) AdjustSelected(delta int) (Target, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.selected
	if target == TargetMeat {
		return target, s.setLocked(target, s.meat.Value+delta)
	}
	return target, s.setLocked(target, s.air.Value+delta)
}

// Clamp re-applies the limits to both setpoints. Every write path
// clamps already, so a second call with no intervening adjustment is
// a no-op.
func (s *Store) Clamp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.air.Value = clamp(s.air.Value, s.air.Min, s.air.Max)
	s.meat.Value = clamp(s.meat.Value, s.meat.Min, s.meat.Max)
}

func (s *Store) setLocked(target Target, value int) int {
	if target == TargetMeat {
		s.meat.Value = clamp(value, s.meat.Min, s.meat.Max)
		return s.meat.Value
	}
	s.air.Value = clamp(value, s.air.Min, s.air.Max)
	return s.air.Value
}
