package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/persistence"
	"github.com/opensmoker/smokerd/internal/probes"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/testingutils"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func createTestServer(t *testing.T) (*httptest.Server, *status.Tracker, *setpoints.Store, persistence.Persistence) {
	t.Helper()

	tracker := status.NewTracker()
	store := setpoints.NewStore(
		configuration.SetpointLimitConfig{Min: 150, Max: 300, Default: 225},
		configuration.SetpointLimitConfig{Min: 120, Max: 210, Default: 190},
	)
	p := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))

	ts := httptest.NewServer(CreateRestService(tracker, store, p))
	t.Cleanup(ts.Close)
	return ts, tracker, store, p
}

func TestAliveEndpoint(t *testing.T) {
	// GIVEN
	ts, _, _, _ := createTestServer(t)

	// WHEN
	resp, err := http.Get(ts.URL + "/alive/")

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetStatusReturnsSnapshot(t *testing.T) {
	// GIVEN
	ts, tracker, _, _ := createTestServer(t)
	tracker.Update(status.Snapshot{
		AirTop:         230,
		AirTarget:      225,
		SelectedTarget: setpoints.TargetAir,
		SystemEnabled:  true,
		HeaterOn:       true,
		Time:           t0,
	})

	// WHEN
	resp, err := http.Get(ts.URL + "/status/")

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap status.Snapshot
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, 230, snap.AirTop)
	assert.True(t, snap.SystemEnabled)
	assert.True(t, snap.HeaterOn)
}

func TestUpdateSetpointClampsToLimits(t *testing.T) {
	// GIVEN
	ts, _, store, _ := createTestServer(t)

	// WHEN
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/setpoint/air/", strings.NewReader(`{"value": 450}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var applied setpoints.Setpoint
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&applied))
	assert.Equal(t, 300, applied.Value)
	assert.Equal(t, 300, store.Air())
}

func TestUpdateSetpointUnknownTarget(t *testing.T) {
	// GIVEN
	ts, _, store, _ := createTestServer(t)

	// WHEN
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/setpoint/oven/", strings.NewReader(`{"value": 200}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 225, store.Air())
	assert.Equal(t, 190, store.Meat())
}

func TestGetProbeValues(t *testing.T) {
	// GIVEN
	ts, _, _, _ := createTestServer(t)
	probe := testingutils.RegisterFakeProbe("air_top", 231)
	defer probes.ProbeMap.Remove(probe.Id)

	// WHEN
	resp, err := http.Get(ts.URL + "/probe/air_top/")

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var dto probeDto
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&dto))
	assert.Equal(t, 231, dto.Value)
	assert.False(t, dto.Faulted)
}

func TestGetProbeNotFound(t *testing.T) {
	// GIVEN
	ts, _, _, _ := createTestServer(t)

	// WHEN
	resp, err := http.Get(ts.URL + "/probe/missing/")

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetHistoryReturnsRecordedRows(t *testing.T) {
	// GIVEN
	ts, _, _, p := createTestServer(t)
	assert.NoError(t, p.SaveSnapshot(status.Snapshot{AirTop: 220, Time: t0}))
	assert.NoError(t, p.SaveSnapshot(status.Snapshot{AirTop: 224, Time: t0.Add(10 * time.Second)}))

	// WHEN
	resp, err := http.Get(ts.URL + "/history/?since=" + t0.Format(time.RFC3339))

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshots []status.Snapshot
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshots))
	assert.Len(t, snapshots, 2)
	assert.Equal(t, 220, snapshots[0].AirTop)
}

func TestGetHistoryRejectsBadSince(t *testing.T) {
	// GIVEN
	ts, _, _, _ := createTestServer(t)

	// WHEN
	resp, err := http.Get(ts.URL + "/history/?since=yesterday")

	// THEN
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusWebsocketPushesSnapshot(t *testing.T) {
	// GIVEN
	ts, tracker, _, _ := createTestServer(t)
	tracker.Update(status.Snapshot{AirTop: 233, SystemEnabled: true, Time: t0})

	// WHEN
	wsUrl := "ws" + strings.TrimPrefix(ts.URL, "http") + "/status/ws/"
	conn, _, err := websocket.DefaultDialer.Dial(wsUrl, nil)

	// THEN
	assert.NoError(t, err)
	defer conn.Close()

	var snap status.Snapshot
	assert.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, 233, snap.AirTop)
	assert.True(t, snap.SystemEnabled)
}
