package testingutils

import (
	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/probes"
)

// FakeProbe is a scriptable probes.Probe for tests.
type FakeProbe struct {
	Id        string
	Temp      int
	IsFaulted bool

	// Measured counts how many times Measure was called.
	Measured int
}

func (probe *FakeProbe) GetId() string {
	return probe.Id
}

func (probe *FakeProbe) GetConfig() configuration.ProbeConfig {
	return configuration.ProbeConfig{ID: probe.Id}
}

func (probe *FakeProbe) Measure() int {
	probe.Measured++
	return probe.Temp
}

func (probe *FakeProbe) Value() int {
	return probe.Temp
}

func (probe *FakeProbe) Faulted() bool {
	return probe.IsFaulted
}

// RegisterFakeProbe puts a fake probe into the global registry so code
// iterating the registry sees it.
func RegisterFakeProbe(id string, temp int) *FakeProbe {
	probe := &FakeProbe{Id: id, Temp: temp}
	probes.ProbeMap.Set(id, probe)
	return probe
}
