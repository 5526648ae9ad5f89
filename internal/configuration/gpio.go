package configuration

type GpioConfig struct {
	// Chip is the GPIO character device all lines are requested from.
	Chip string `json:"chip"`
}
