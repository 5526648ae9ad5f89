package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/status"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func createPersistence(t *testing.T) Persistence {
	return NewPersistence(filepath.Join(t.TempDir(), "test.db"))
}

func createSnapshot(at time.Time, airTop int) status.Snapshot {
	return status.Snapshot{
		AirTop:        airTop,
		AirBottom:     205,
		Meat1:         141,
		AirTarget:     225,
		Meat1Target:   190,
		SystemEnabled: true,
		HeaterOn:      true,
		Time:          at,
	}
}

func TestPersistence_SaveAndLoadSnapshots(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0, 220)))
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0.Add(10*time.Second), 224)))
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0.Add(20*time.Second), 228)))

	// WHEN
	snapshots, err := p.LoadSnapshotsSince(t0.Add(10 * time.Second))

	// THEN
	assert.NoError(t, err)
	assert.Len(t, snapshots, 2)
	assert.Equal(t, 224, snapshots[0].AirTop)
	assert.Equal(t, 228, snapshots[1].AirTop)
	assert.Equal(t, t0.Add(20*time.Second), snapshots[1].Time)
}

func TestPersistence_LoadFromEmptyDb(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	snapshots, err := p.LoadSnapshotsSince(t0)

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestPersistence_DeleteSnapshotsBefore(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0, 220)))
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0.Add(10*time.Second), 224)))
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0.Add(20*time.Second), 228)))

	// WHEN
	count, err := p.DeleteSnapshotsBefore(t0.Add(15 * time.Second))

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	remaining, err := p.LoadSnapshotsSince(t0)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, 228, remaining[0].AirTop)
}

func TestPersistence_SameSecondOverwrites(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0, 220)))
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0, 221)))

	// WHEN
	snapshots, err := p.LoadSnapshotsSince(t0)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, snapshots, 1)
	assert.Equal(t, 221, snapshots[0].AirTop)
}

func TestPersistence_InitCreatesParentDirectory(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	p := NewPersistence(dbPath)

	// WHEN
	err := p.Init()

	// THEN
	assert.NoError(t, err)
	assert.NoError(t, p.SaveSnapshot(createSnapshot(t0, 220)))
}
