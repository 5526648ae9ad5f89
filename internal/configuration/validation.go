package configuration

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/opensmoker/smokerd/internal/ui"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateProbes(config)
	if err != nil {
		return err
	}
	err = validatePins(config)
	if err != nil {
		return err
	}
	err = validateLimits(config)
	if err != nil {
		return err
	}
	err = validateControl(config)
	if err != nil {
		return err
	}
	return validateOutputs(config)
}

func validateProbes(config *Configuration) error {
	controlProbeIds := []string{ProbeAirTop, ProbeAirBottom, ProbeMeat1}

	seen := map[string]bool{}
	for _, probeConfig := range config.Probes {
		if len(probeConfig.ID) <= 0 {
			return errors.New("Probe without an id found")
		}
		if seen[probeConfig.ID] {
			return errors.New(fmt.Sprintf("Probe %s: duplicate probe id", probeConfig.ID))
		}
		seen[probeConfig.ID] = true

		if !slices.Contains(controlProbeIds, probeConfig.ID) {
			ui.Warning("Probe %s is monitored but not used for control", probeConfig.ID)
		}
	}

	for _, id := range controlProbeIds {
		if !seen[id] {
			return errors.New(fmt.Sprintf("Missing probe definition with id '%s'", id))
		}
	}

	return nil
}

func validatePins(config *Configuration) error {
	used := map[int]string{}

	claim := func(pin int, owner string) error {
		if previous, ok := used[pin]; ok {
			return errors.New(fmt.Sprintf("Pin %d is used by both %s and %s", pin, previous, owner))
		}
		used[pin] = owner
		return nil
	}

	for _, probeConfig := range config.Probes {
		if err := claim(probeConfig.Sck, fmt.Sprintf("probe %s sck", probeConfig.ID)); err != nil {
			return err
		}
		if err := claim(probeConfig.Cs, fmt.Sprintf("probe %s cs", probeConfig.ID)); err != nil {
			return err
		}
		if err := claim(probeConfig.So, fmt.Sprintf("probe %s so", probeConfig.ID)); err != nil {
			return err
		}
	}

	if err := claim(config.Buttons.Menu, "menu button"); err != nil {
		return err
	}
	if err := claim(config.Buttons.Increase, "increase button"); err != nil {
		return err
	}
	if err := claim(config.Buttons.Decrease, "decrease button"); err != nil {
		return err
	}
	if err := claim(config.Switch.Pin, "run switch"); err != nil {
		return err
	}
	if err := claim(config.Relays.Heater, "heater relay"); err != nil {
		return err
	}
	return claim(config.Relays.Fan, "fan relay")
}

func validateLimits(config *Configuration) error {
	limits := map[string]SetpointLimitConfig{
		"air":  config.Limits.Air,
		"meat": config.Limits.Meat,
	}

	for name, limit := range limits {
		if limit.Min >= limit.Max {
			return errors.New(fmt.Sprintf("Limits %s: min (%d) must be below max (%d)", name, limit.Min, limit.Max))
		}
		if limit.Default < limit.Min || limit.Default > limit.Max {
			return errors.New(fmt.Sprintf("Limits %s: default (%d) is outside [%d, %d]", name, limit.Default, limit.Min, limit.Max))
		}
	}

	return nil
}

func validateControl(config *Configuration) error {
	controlConfig := config.Control

	if controlConfig.ControlLoopRate <= 0 {
		return errors.New("Control: controlLoopRate must be > 0")
	}
	if controlConfig.InputLoopRate <= 0 {
		return errors.New("Control: inputLoopRate must be > 0")
	}

	pidConfig := controlConfig.Pid
	if pidConfig.P == 0 && pidConfig.I == 0 && pidConfig.D == 0 {
		return errors.New("Control: all PID constants are zero")
	}

	if controlConfig.FanDeltaOff > controlConfig.FanDeltaOn {
		return errors.New(fmt.Sprintf("Control: fanDeltaOff (%d) must not exceed fanDeltaOn (%d)", controlConfig.FanDeltaOff, controlConfig.FanDeltaOn))
	}

	if controlConfig.EmergencyTemp <= config.Limits.Air.Max {
		return errors.New(fmt.Sprintf("Control: emergencyTemp (%d) must be above the air limit max (%d)", controlConfig.EmergencyTemp, config.Limits.Air.Max))
	}

	return nil
}

func validateOutputs(config *Configuration) error {
	if config.Mqtt.Enabled {
		if len(config.Mqtt.Broker) <= 0 {
			return errors.New("Mqtt: missing broker")
		}
	}

	if config.Bridge.Enabled {
		if len(config.Bridge.Port) <= 0 {
			return errors.New("Bridge: missing serial port")
		}
		if config.Bridge.BaudRate <= 0 {
			return errors.New("Bridge: invalid baud rate")
		}
	}

	if config.Overrides.Enabled {
		if len(config.Overrides.Path) <= 0 {
			return errors.New("Overrides: missing file path")
		}
		if config.Overrides.PollInterval <= 0 || config.Overrides.SaveInterval <= 0 {
			return errors.New("Overrides: poll and save intervals must be > 0")
		}
	}

	if config.Alert.Enabled {
		mailgunConfig := config.Alert.Mailgun
		if len(mailgunConfig.Domain) <= 0 || len(mailgunConfig.ApiKey) <= 0 {
			return errors.New("Alert: missing mailgun domain or api key")
		}
		if len(mailgunConfig.Sender) <= 0 {
			return errors.New("Alert: missing sender address")
		}
		if len(mailgunConfig.Recipients) <= 0 {
			return errors.New("Alert: no recipients configured")
		}
	}

	if config.History.Enabled {
		if len(config.DbPath) <= 0 {
			return errors.New("History: missing dbPath")
		}
		if config.History.RecordInterval <= 0 {
			return errors.New("History: recordInterval must be > 0")
		}
		if config.History.Retention <= config.History.RecordInterval {
			return errors.New(fmt.Sprintf("History: retention (%v) must exceed recordInterval (%v)", config.History.Retention, config.History.RecordInterval))
		}
	}

	return nil
}
