package configuration

// RelaysConfig holds the BCM offsets of the relay driver lines.
type RelaysConfig struct {
	Heater int `json:"heater"`
	Fan    int `json:"fan"`
}
