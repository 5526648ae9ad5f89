package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/status"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func createMonitor() (*Monitor, *FakeSender, *status.Tracker, *time.Time) {
	sender := NewFakeSender()
	tracker := status.NewTracker()
	monitor := NewMonitor(sender, tracker)
	current := t0
	monitor.now = func() time.Time { return current }
	return monitor, sender, tracker, &current
}

func TestMonitorSkipsEmptySnapshot(t *testing.T) {
	// GIVEN a tracker the control loop has not written to yet
	monitor, sender, _, _ := createMonitor()

	// WHEN
	monitor.check()

	// THEN
	assert.Empty(t, sender.Subjects)
}

func TestMonitorNotifiesEmergencyOnce(t *testing.T) {
	// GIVEN a latched emergency
	monitor, sender, tracker, _ := createMonitor()
	tracker.Update(status.Snapshot{Emergency: true, AirTop: 605, Time: t0})

	// WHEN checked repeatedly
	monitor.check()
	monitor.check()

	// THEN a single notification went out
	if assert.Len(t, sender.Subjects, 1) {
		assert.Equal(t, "smokerd: over-temperature emergency", sender.Subjects[0])
		assert.Contains(t, sender.Bodies[0], "air top 605°F")
	}
}

func TestMonitorRearmsAfterEmergencyClears(t *testing.T) {
	// GIVEN a notified emergency that has been cleared
	monitor, sender, tracker, _ := createMonitor()
	tracker.Update(status.Snapshot{Emergency: true, Time: t0})
	monitor.check()
	tracker.Update(status.Snapshot{Emergency: false, Time: t0})
	monitor.check()

	// WHEN the emergency latches again
	tracker.Update(status.Snapshot{Emergency: true, Time: t0})
	monitor.check()

	// THEN a second notification went out
	assert.Len(t, sender.Subjects, 2)
}

func TestMonitorRetriesFailedEmergencySend(t *testing.T) {
	// GIVEN a mail service that is down
	monitor, sender, tracker, _ := createMonitor()
	sender.SendError = assert.AnError
	tracker.Update(status.Snapshot{Emergency: true, Time: t0})
	monitor.check()
	assert.Empty(t, sender.Subjects)

	// WHEN the service recovers
	sender.SendError = nil
	monitor.check()

	// THEN the notification was delivered
	assert.Len(t, sender.Subjects, 1)
}

func TestMonitorNotifiesSustainedProbeFault(t *testing.T) {
	// GIVEN a faulted meat probe
	monitor, sender, tracker, clock := createMonitor()
	tracker.Update(status.Snapshot{Meat1Faulted: true, Time: t0})

	// WHEN the fault is first seen
	monitor.check()

	// THEN no notification yet
	assert.Empty(t, sender.Subjects)

	// WHEN the fault persists past the grace period
	*clock = t0.Add(2 * time.Minute)
	monitor.check()
	monitor.check()

	// THEN exactly one notification went out
	if assert.Len(t, sender.Subjects, 1) {
		assert.Equal(t, "smokerd: probe meat_1 faulted", sender.Subjects[0])
	}
}

func TestMonitorIgnoresBriefProbeFault(t *testing.T) {
	// GIVEN a probe that faults and recovers within the grace period
	monitor, sender, tracker, clock := createMonitor()
	tracker.Update(status.Snapshot{Meat1Faulted: true, Time: t0})
	monitor.check()
	*clock = t0.Add(10 * time.Second)
	tracker.Update(status.Snapshot{Meat1Faulted: false, Time: t0})
	monitor.check()

	// WHEN the probe faults again much later
	*clock = t0.Add(10 * time.Minute)
	tracker.Update(status.Snapshot{Meat1Faulted: true, Time: t0})
	monitor.check()

	// THEN the earlier episode does not count towards the grace period
	assert.Empty(t, sender.Subjects)
}

func TestMonitorTracksProbesIndependently(t *testing.T) {
	// GIVEN two probes faulted past the grace period
	monitor, sender, tracker, clock := createMonitor()
	tracker.Update(status.Snapshot{AirTopFaulted: true, Meat1Faulted: true, Time: t0})
	monitor.check()
	*clock = t0.Add(2 * time.Minute)

	// WHEN
	monitor.check()

	// THEN each probe got its own notification
	assert.Len(t, sender.Subjects, 2)
	assert.Contains(t, sender.Subjects, "smokerd: probe air_top faulted")
	assert.Contains(t, sender.Subjects, "smokerd: probe meat_1 faulted")
}
