package configuration

import "time"

type HistoryConfig struct {
	Enabled bool `json:"enabled"`
	// RecordInterval is the time between two persisted snapshots.
	RecordInterval time.Duration `json:"recordInterval"`
	// Retention is how long persisted snapshots are kept before they
	// are pruned from the database.
	Retention time.Duration `json:"retention"`
}
