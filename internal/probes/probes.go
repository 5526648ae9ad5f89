package probes

import (
	"sync"

	"github.com/asecurityteam/rolling"
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/ui"
	"github.com/opensmoker/smokerd/internal/util"
)

const (
	// FaultTemp is reported for a probe whose thermocouple cannot be
	// read. Well above anything a smoker can reach, so a faulted air
	// probe drives the heater off instead of latching it on.
	FaultTemp = 999

	// WindowSize is the number of readings smoothed over.
	WindowSize = 5

	// primeTemp is the value the smoothing window is filled with
	// before the first reading.
	primeTemp = 100
)

var (
	ProbeMap = cmap.New[Probe]()
)

// CelsiusReader is the hardware side of a probe.
type CelsiusReader interface {
	ReadCelsius() (float64, error)
}

type Probe interface {
	GetId() string

	GetConfig() configuration.ProbeConfig

	// Measure takes a fresh reading, pushes it through the smoothing
	// window and returns the new smoothed value. A reading that
	// cannot be taken enters the window as FaultTemp.
	Measure() int

	// Value returns the most recent smoothed value in fahrenheit.
	Value() int

	// Faulted reports whether the last reading failed.
	Faulted() bool
}

func NewProbe(config configuration.ProbeConfig, reader CelsiusReader) Probe {
	probe := &thermocoupleProbe{
		config: config,
		reader: reader,
		window: util.CreateRollingWindow(WindowSize),
	}
	util.FillWindow(probe.window, WindowSize, primeTemp)
	probe.smoothed = primeTemp
	return probe
}

type thermocoupleProbe struct {
	config configuration.ProbeConfig
	reader CelsiusReader

	mu       sync.RWMutex
	window   *rolling.PointPolicy
	smoothed int
	faulted  bool
}

func (probe *thermocoupleProbe) GetId() string {
	return probe.config.ID
}

func (probe *thermocoupleProbe) GetConfig() configuration.ProbeConfig {
	return probe.config
}

func (probe *thermocoupleProbe) Measure() int {
	celsius, err := probe.reader.ReadCelsius()

	fahrenheit := FaultTemp
	if err == nil {
		fahrenheit = util.CelsiusToFahrenheit(celsius) + probe.config.Offset
		if fahrenheit > FaultTemp {
			fahrenheit = FaultTemp
		}
	}

	probe.mu.Lock()
	defer probe.mu.Unlock()

	if err != nil && !probe.faulted {
		ui.Warning("Probe %s cannot be read: %v", probe.config.ID, err)
	} else if err == nil && probe.faulted {
		ui.Info("Probe %s is readable again", probe.config.ID)
	}
	probe.faulted = err != nil

	probe.window.Append(float64(fahrenheit))
	// integer average, truncated
	probe.smoothed = int(util.GetWindowAvg(probe.window))
	return probe.smoothed
}

func (probe *thermocoupleProbe) Value() int {
	probe.mu.RLock()
	defer probe.mu.RUnlock()
	return probe.smoothed
}

func (probe *thermocoupleProbe) Faulted() bool {
	probe.mu.RLock()
	defer probe.mu.RUnlock()
	return probe.faulted
}
