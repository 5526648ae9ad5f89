package configuration

// ButtonsConfig holds the BCM offsets of the three front panel
// buttons. All buttons are wired active-low with internal pull-ups.
type ButtonsConfig struct {
	Menu     int `json:"menu"`
	Increase int `json:"increase"`
	Decrease int `json:"decrease"`
}

// SwitchConfig holds the BCM offset of the run/stop switch.
// The switch is wired active-low like the buttons.
type SwitchConfig struct {
	Pin int `json:"pin"`
}
