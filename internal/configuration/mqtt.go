package configuration

import "time"

type MqttConfig struct {
	Enabled bool `json:"enabled"`
	// Broker in URL form, e.g. tcp://mqtt.local:1883
	Broker   string `json:"broker"`
	ClientID string `json:"clientId"`
	Username string `json:"username"`
	Password string `json:"password"`
	// TopicPrefix is prepended to all published topics.
	TopicPrefix string `json:"topicPrefix"`
	// PublishInterval between periodic status publications.
	PublishInterval time.Duration `json:"publishInterval"`
}
