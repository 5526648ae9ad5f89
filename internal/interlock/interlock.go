// Package interlock gates the heater behind the physical run switch
// and the over-temperature latch. The switch is authoritative: no
// control output may reach the relays while it reports off.
package interlock

import (
	"sync"
	"time"

	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/probes"
	"github.com/opensmoker/smokerd/internal/ui"
)

type Interlock struct {
	line          gpio.InputLine
	emergencyTemp int
	now           func() time.Time

	mu       sync.RWMutex
	enabled  bool
	runStart time.Time
	frozen   time.Duration
	latched  bool
}

func NewInterlock(line gpio.InputLine, emergencyTemp int) *Interlock {
	return &Interlock{
		line:          line,
		emergencyTemp: emergencyTemp,
		now:           time.Now,
	}
}

// Poll reads the run switch (active-low) and updates the enable
// state. A switch that cannot be read counts as off. A false→true
// transition starts a new run timer, a true→false transition clears
// the over-temperature latch.
func (i *Interlock) Poll() bool {
	on := false
	level, err := i.line.Value()
	if err != nil {
		ui.Warning("Unable to read run switch: %v", err)
	} else {
		on = level == 0
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if on && !i.enabled {
		i.runStart = i.now()
		ui.Info("System switched on")
	}
	if !on && i.enabled {
		i.frozen = i.now().Sub(i.runStart)
		ui.Info("System switched off")
	}
	if !on && i.latched {
		i.latched = false
		ui.Info("Over-temperature latch cleared")
	}

	i.enabled = on
	return on
}

// CheckOverTemp latches the emergency state when any smoothed probe
// value reaches the emergency threshold. Probe fault readings report
// a broken thermocouple, not an overheated chamber, and never trip
// the latch. Returns the latch state.
func (i *Interlock) CheckOverTemp(values ...int) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, value := range values {
		if value >= i.emergencyTemp && value < probes.FaultTemp {
			if !i.latched {
				ui.Error("Over-temperature: %d, latching heater off until switched off", value)
			}
			i.latched = true
		}
	}
	return i.latched
}

// Enabled returns the result of the most recent Poll.
func (i *Interlock) Enabled() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.enabled
}

// Latched reports whether the over-temperature latch is set.
func (i *Interlock) Latched() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.latched
}

// RunTime returns the elapsed time of the current run, or the final
// run time of the previous run while the system is off.
func (i *Interlock) RunTime() time.Duration {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if !i.enabled {
		return i.frozen
	}
	return i.now().Sub(i.runStart)
}
