package persistence

import (
	"context"
	"time"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
)

// pruneInterval is how often the retention window is enforced.
const pruneInterval = 1 * time.Hour

// Recorder periodically persists the latest status snapshot and prunes
// rows that fall out of the retention window.
type Recorder struct {
	persistence Persistence
	tracker     *status.Tracker
	interval    time.Duration
	retention   time.Duration
}

func NewRecorder(persistence Persistence, tracker *status.Tracker, config configuration.HistoryConfig) *Recorder {
	return &Recorder{
		persistence: persistence,
		tracker:     tracker,
		interval:    config.RecordInterval,
		retention:   config.Retention,
	}
}

func (r *Recorder) Run(ctx context.Context) error {
	r.prune()

	tick := time.Tick(r.interval)
	pruneTick := time.Tick(pruneInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			r.record()
		case <-pruneTick:
			r.prune()
		}
	}
}

func (r *Recorder) record() {
	snap := r.tracker.Snapshot()
	if snap.Time.IsZero() {
		// the control loop has not published yet
		return
	}
	if err := r.persistence.SaveSnapshot(snap); err != nil {
		ui.Warning("Failed to persist status snapshot: %v", err)
	}
}

func (r *Recorder) prune() {
	count, err := r.persistence.DeleteSnapshotsBefore(time.Now().Add(-r.retention))
	if err != nil {
		ui.Warning("Failed to prune history: %v", err)
		return
	}
	if count > 0 {
		ui.Debug("Pruned %d history rows", count)
	}
}
