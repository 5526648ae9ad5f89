package configuration

import "time"

type ControlConfig struct {
	// Time interval between each heater evaluation cycle.
	ControlLoopRate time.Duration `json:"controlLoopRate"`
	// Time interval between each button evaluation cycle.
	InputLoopRate time.Duration `json:"inputLoopRate"`

	Pid PidConfig `json:"pid"`

	// Minimum time a relay state has to be held before it may
	// change again. Protects mechanical relays and the heating
	// element from rapid cycling.
	MinHeaterCycleTime time.Duration `json:"minHeaterCycleTime"`
	MinFanCycleTime    time.Duration `json:"minFanCycleTime"`

	// Stratification thresholds for the circulation fan, in
	// fahrenheit difference between the top and bottom air probes.
	FanDeltaOn  int `json:"fanDeltaOn"`
	FanDeltaOff int `json:"fanDeltaOff"`

	// EmergencyTemp latches the controller into an error state when
	// any probe reaches it. Cleared by switching the smoker off.
	EmergencyTemp int `json:"emergencyTemp"`
}

type PidConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
}
