package configuration

type DisplayConfig struct {
	Enabled bool `json:"enabled"`
}
