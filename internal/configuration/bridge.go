package configuration

type BridgeConfig struct {
	Enabled bool `json:"enabled"`
	// Port is the serial device the backend host is attached to.
	Port     string `json:"port"`
	BaudRate int    `json:"baudRate"`
}
