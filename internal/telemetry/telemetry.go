// Package telemetry publishes the controller state over MQTT so dashboards
// and home automation systems can follow a cook remotely.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/opensmoker/smokerd/internal/status"
)

const (
	// EventStartup is sent once after the daemon connects to the broker.
	EventStartup = "STARTUP"
	// EventShutdown is sent when the daemon exits cleanly.
	EventShutdown = "SHUTDOWN"
	// EventOffline is registered as the broker-side last will, delivered
	// when the connection dies without a clean shutdown.
	EventOffline = "OFFLINE"
)

// StatusTopic returns the topic periodic snapshots are published on.
func StatusTopic(prefix string) string {
	return prefix + "/status"
}

// SystemTopic returns the topic lifecycle events are published on.
func SystemTopic(prefix string) string {
	return prefix + "/system"
}

// SystemEvent is a lifecycle marker (startup, shutdown, last will).
type SystemEvent struct {
	Timestamp time.Time
	Event     string
	Reason    string
}

type systemPayload struct {
	System systemPayloadInner `json:"system"`
}

type systemPayloadInner struct {
	Timestamp string `json:"timestamp,omitempty"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatStatusPayload renders a snapshot as published on the status topic.
func FormatStatusPayload(snap status.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

// FormatSystemPayload renders a lifecycle event as published on the system
// topic. The last will carries no timestamp since the broker delivers it at
// an unknown later time.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	inner := systemPayloadInner{
		Event:  event.Event,
		Reason: event.Reason,
	}
	if !event.Timestamp.IsZero() {
		inner.Timestamp = event.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(systemPayload{System: inner})
}

// Publisher pushes status and lifecycle messages to a broker.
type Publisher interface {
	PublishStatus(snap status.Snapshot) error
	PublishSystem(event SystemEvent) error
	Close() error
}
