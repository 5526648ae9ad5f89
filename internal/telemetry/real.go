package telemetry

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// MqttPublisher publishes to a real broker using the paho client.
type MqttPublisher struct {
	client      paho.Client
	statusTopic string
	systemTopic string
}

// NewMqttPublisher connects to the configured broker. The last will is
// registered on the system topic so listeners notice a dead controller.
func NewMqttPublisher(config configuration.MqttConfig) (*MqttPublisher, error) {
	systemTopic := SystemTopic(config.TopicPrefix)

	will, err := FormatSystemPayload(SystemEvent{Event: EventOffline})
	if err != nil {
		return nil, err
	}

	opts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetBinaryWill(systemTopic, will, 1, false)
	if config.Username != "" {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		// the client keeps retrying in the background, publishes fail
		// until the broker becomes reachable
		ui.Warning("MQTT broker %s not reachable yet, retrying in the background", config.Broker)
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %w", config.Broker, err)
	}

	return &MqttPublisher{
		client:      client,
		statusTopic: StatusTopic(config.TopicPrefix),
		systemTopic: systemTopic,
	}, nil
}

// PublishStatus sends a snapshot to the status topic. The message is retained
// so a freshly connected dashboard sees the last known state immediately.
func (p *MqttPublisher) PublishStatus(snap status.Snapshot) error {
	payload, err := FormatStatusPayload(snap)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.statusTopic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("status publish timed out")
	}
	return token.Error()
}

// PublishSystem sends a lifecycle event to the system topic with QoS 1.
func (p *MqttPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.systemTopic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("system publish timed out")
	}
	return token.Error()
}

func (p *MqttPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
