package configuration

type LimitsConfig struct {
	Air  SetpointLimitConfig `json:"air"`
	Meat SetpointLimitConfig `json:"meat"`
}

type SetpointLimitConfig struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}
