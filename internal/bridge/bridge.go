// Package bridge speaks a newline-delimited protocol over a serial link so an
// attached backend host can mirror the controller state and adjust targets
// without going through the network stack.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
)

const reconnectInterval = 3 * time.Second

// Commands accepted from the host. Target commands carry a single integer
// argument in fahrenheit and are clamped to the configured limits.
const (
	cmdAirTarget  = "AIR_TARGET"
	cmdMeatTarget = "MEAT_TARGET"
	cmdStatus     = "STATUS"
)

// telemetryLine is the wire format written once per interval. The field
// names are what the remote backend logs and graphs.
type telemetryLine struct {
	TempAirTop    int    `json:"temp_air_top"`
	TempAirBottom int    `json:"temp_air_bottom"`
	TempMeat      int    `json:"temp_meat"`
	AirTarget     int    `json:"temp_air_target"`
	MeatTarget    int    `json:"temp_meat_1_target"`
	HeaterState   string `json:"heater_state"`
	FanState      string `json:"fan_state"`
	SmokerState   string `json:"smoker_state"`
}

// FormatTelemetry renders one newline-terminated status line.
func FormatTelemetry(snap status.Snapshot) ([]byte, error) {
	line := telemetryLine{
		TempAirTop:    snap.AirTop,
		TempAirBottom: snap.AirBottom,
		TempMeat:      snap.Meat1,
		AirTarget:     snap.AirTarget,
		MeatTarget:    snap.Meat1Target,
		HeaterState:   onOff(snap.HeaterOn),
		FanState:      onOff(snap.FanOn),
		SmokerState:   onOff(snap.SystemEnabled),
	}
	payload, err := json.Marshal(line)
	if err != nil {
		return nil, err
	}
	return append(payload, '\n'), nil
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// Bridge owns one serial link. It periodically writes telemetry lines and
// applies target commands sent by the host.
type Bridge struct {
	config   configuration.BridgeConfig
	tracker  *status.Tracker
	store    *setpoints.Store
	interval time.Duration

	mu   sync.Mutex
	conn io.ReadWriteCloser
}

func NewBridge(
	config configuration.BridgeConfig,
	tracker *status.Tracker,
	store *setpoints.Store,
	interval time.Duration,
) *Bridge {
	return &Bridge{
		config:   config,
		tracker:  tracker,
		store:    store,
		interval: interval,
	}
}

// Run keeps the link alive until the context is cancelled. Open failures are
// retried, an unplugged cable must not take the controller down.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		conn, err := serial.Open(b.config.Port, &serial.Mode{BaudRate: b.config.BaudRate})
		if err != nil {
			ui.Warning("Unable to open serial port %s: %v", b.config.Port, err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(reconnectInterval):
				continue
			}
		}
		ui.Info("Serial bridge connected on %s", b.config.Port)
		b.serve(ctx, conn)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// serve runs the reader and the telemetry ticker over one connection until
// the context ends or the link errors out.
func (b *Bridge) serve(ctx context.Context, conn io.ReadWriteCloser) {
	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.conn = nil
		b.mu.Unlock()
		_ = conn.Close()
	}()

	// Closing the connection on return unblocks this scanner.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			b.handleLine(line)
		}
		if err := scanner.Err(); err != nil {
			ui.Warning("Serial read failed: %v", err)
		}
	}()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-readerDone:
			return
		case <-ticker.C:
			if err := b.writeTelemetry(); err != nil {
				ui.Warning("Serial write failed: %v", err)
				return
			}
		}
	}
}

func (b *Bridge) handleLine(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch command := strings.ToUpper(fields[0]); command {
	case cmdStatus:
		if err := b.writeTelemetry(); err != nil {
			ui.Warning("Serial write failed: %v", err)
		}
	case cmdAirTarget, cmdMeatTarget:
		if len(fields) != 2 {
			ui.Warning("Ignoring malformed command: %s", line)
			return
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil {
			ui.Warning("Ignoring malformed command: %s", line)
			return
		}
		target := setpoints.TargetAir
		if command == cmdMeatTarget {
			target = setpoints.TargetMeat
		}
		applied := b.store.Set(target, value)
		ui.Debug("Bridge set %s target to %d", target, applied)
	default:
		ui.Warning("Ignoring unknown command: %s", line)
	}
}

func (b *Bridge) writeTelemetry() error {
	snap := b.tracker.Snapshot()
	if snap.Time.IsZero() {
		// the control loop has not produced a snapshot yet
		return nil
	}
	payload, err := FormatTelemetry(snap)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return fmt.Errorf("link is down")
	}
	_, err = b.conn.Write(payload)
	return err
}
