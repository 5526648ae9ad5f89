package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
)

const (
	pollRate = 5 * time.Second
	// faultGrace is how long a probe has to stay faulted before an email
	// goes out. Brief opens happen when a probe plug is reseated.
	faultGrace = time.Minute
)

// Monitor watches the controller state and notifies once per episode on an
// emergency latch and on probes that stay faulted. Failed sends are retried
// on the next poll until one goes through.
type Monitor struct {
	sender  Sender
	tracker *status.Tracker

	emergencyNotified bool
	faultSince        map[string]time.Time
	faultNotified     map[string]bool

	now func() time.Time
}

func NewMonitor(sender Sender, tracker *status.Tracker) *Monitor {
	return &Monitor{
		sender:        sender,
		tracker:       tracker,
		faultSince:    map[string]time.Time{},
		faultNotified: map[string]bool{},
		now:           time.Now,
	}
}

func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(pollRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.check()
		}
	}
}

func (m *Monitor) check() {
	snap := m.tracker.Snapshot()
	if snap.Time.IsZero() {
		// the control loop has not produced a snapshot yet
		return
	}
	m.checkEmergency(snap)
	m.checkProbe(configuration.ProbeAirTop, snap.AirTopFaulted)
	m.checkProbe(configuration.ProbeAirBottom, snap.AirBottomFaulted)
	m.checkProbe(configuration.ProbeMeat1, snap.Meat1Faulted)
}

func (m *Monitor) checkEmergency(snap status.Snapshot) {
	if !snap.Emergency {
		m.emergencyNotified = false
		return
	}
	if m.emergencyNotified {
		return
	}
	subject := "smokerd: over-temperature emergency"
	body := fmt.Sprintf(
		"The chamber overheated (air top %d°F, air bottom %d°F, meat %d°F).\n"+
			"The heater stays off until the smoker is switched off and on again.",
		snap.AirTop, snap.AirBottom, snap.Meat1)
	m.emergencyNotified = m.notify(subject, body)
}

func (m *Monitor) checkProbe(id string, faulted bool) {
	if !faulted {
		delete(m.faultSince, id)
		delete(m.faultNotified, id)
		return
	}

	since, ok := m.faultSince[id]
	if !ok {
		m.faultSince[id] = m.now()
		return
	}
	if m.faultNotified[id] || m.now().Sub(since) < faultGrace {
		return
	}

	subject := fmt.Sprintf("smokerd: probe %s faulted", id)
	body := fmt.Sprintf(
		"Probe %s has been reading open for more than %s.\n"+
			"Check the wiring and the probe connector.",
		id, faultGrace)
	if m.notify(subject, body) {
		m.faultNotified[id] = true
	}
}

func (m *Monitor) notify(subject string, body string) bool {
	if err := m.sender.Send(subject, body); err != nil {
		ui.Warning("Unable to send alert %q: %v", subject, err)
		return false
	}
	ui.Info("Sent alert: %s", subject)
	return true
}
