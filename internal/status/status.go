// Package status provides a thread-safe snapshot of the controller state.
// The control loop publishes a fresh snapshot on every cycle; the REST api,
// websocket stream, serial bridge, display refresher and MQTT publisher all
// read from here instead of touching the control loop.
package status

import (
	"sync"
	"time"

	"github.com/opensmoker/smokerd/internal/setpoints"
)

// Snapshot is a point-in-time view of the controller state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	// smoothed probe temperatures in degrees Fahrenheit
	AirTop    int `json:"air_top"`
	AirBottom int `json:"air_bottom"`
	Meat1     int `json:"meat_1"`

	AirTopFaulted    bool `json:"air_top_faulted"`
	AirBottomFaulted bool `json:"air_bottom_faulted"`
	Meat1Faulted     bool `json:"meat_1_faulted"`

	AirTarget      int              `json:"air_target"`
	Meat1Target    int              `json:"meat_1_target"`
	SelectedTarget setpoints.Target `json:"selected_target"`

	SystemEnabled  bool  `json:"system_enabled"`
	Emergency      bool  `json:"emergency"`
	RunTimeSeconds int64 `json:"run_time_seconds"`

	HeaterOn bool `json:"heater_on"`
	FanOn    bool `json:"fan_on"`

	Time time.Time `json:"time"`
}

// Tracker holds the latest snapshot behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Update replaces the stored snapshot. Called by the control loop on every cycle.
func (t *Tracker) Update(snap Snapshot) {
	t.mu.Lock()
	t.snap = snap
	t.mu.Unlock()
}

// Snapshot returns a copy of the most recently published controller state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap
}
