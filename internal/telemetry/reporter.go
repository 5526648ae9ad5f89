package telemetry

import (
	"context"
	"time"

	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
)

// Reporter periodically publishes the tracked controller state.
type Reporter struct {
	publisher Publisher
	tracker   *status.Tracker
	interval  time.Duration

	now func() time.Time
}

func NewReporter(publisher Publisher, tracker *status.Tracker, interval time.Duration) *Reporter {
	return &Reporter{
		publisher: publisher,
		tracker:   tracker,
		interval:  interval,
		now:       time.Now,
	}
}

// Run announces startup, then publishes a snapshot every interval until the
// context is cancelled. Publish failures are logged and the loop keeps going,
// the paho client reconnects on its own.
func (r *Reporter) Run(ctx context.Context) error {
	if err := r.publisher.PublishSystem(SystemEvent{Timestamp: r.now(), Event: EventStartup}); err != nil {
		ui.Warning("Unable to publish startup event: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := r.publisher.PublishSystem(SystemEvent{Timestamp: r.now(), Event: EventShutdown}); err != nil {
				ui.Warning("Unable to publish shutdown event: %v", err)
			}
			return nil
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *Reporter) report() {
	snap := r.tracker.Snapshot()
	if snap.Time.IsZero() {
		// the control loop has not produced a snapshot yet
		return
	}
	if err := r.publisher.PublishStatus(snap); err != nil {
		ui.Warning("Unable to publish status: %v", err)
	}
}
