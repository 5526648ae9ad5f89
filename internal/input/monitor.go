package input

import (
	"context"
	"time"

	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/ui"
)

type Monitor interface {
	Run(ctx context.Context) error
	Poll(now time.Time)
}

type buttonMonitor struct {
	pollRate time.Duration

	menuLine     gpio.InputLine
	increaseLine gpio.InputLine
	decreaseLine gpio.InputLine

	store *setpoints.Store

	menu     MenuRuntime
	increase ButtonRuntime
	decrease ButtonRuntime
}

func NewMonitor(
	pollRate time.Duration,
	menuLine gpio.InputLine,
	increaseLine gpio.InputLine,
	decreaseLine gpio.InputLine,
	store *setpoints.Store,
) Monitor {
	return &buttonMonitor{
		pollRate:     pollRate,
		menuLine:     menuLine,
		increaseLine: increaseLine,
		decreaseLine: decreaseLine,
		store:        store,
	}
}

func (m *buttonMonitor) Run(ctx context.Context) error {
	tick := time.Tick(m.pollRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			m.Poll(time.Now())
		}
	}
}

// Poll runs one input loop iteration. A line that cannot be read is
// treated as released for this tick and logged; the loop never stops.
func (m *buttonMonitor) Poll(now time.Time) {
	if m.menu.Evaluate(m.readPressed(m.menuLine, "menu"), now) {
		selected := m.store.ToggleSelection()
		ui.Debug("Selected target: %s", selected)
	}

	if step := m.increase.Evaluate(m.readPressed(m.increaseLine, "increase"), now); step != 0 {
		target, value := m.store.AdjustSelected(step)
		ui.Debug("Adjusted %s target to %d", target, value)
	}

	if step := m.decrease.Evaluate(m.readPressed(m.decreaseLine, "decrease"), now); step != 0 {
		target, value := m.store.AdjustSelected(-step)
		ui.Debug("Adjusted %s target to %d", target, value)
	}

	m.store.Clamp()
}

// readPressed converts the raw active-low level to a logical state.
func (m *buttonMonitor) readPressed(line gpio.InputLine, name string) bool {
	level, err := line.Value()
	if err != nil {
		ui.Warning("Unable to read %s button: %v", name, err)
		return false
	}
	return level == 0
}
