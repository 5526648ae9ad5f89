package max6675

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opensmoker/smokerd/internal/gpio"
)

// frameLevels expands a 16 bit conversion frame into the raw levels
// seen on the SO line, most significant bit first.
func frameLevels(frame uint16) []int {
	levels := make([]int, frameBits)
	for i := 0; i < frameBits; i++ {
		levels[i] = int(frame >> (frameBits - 1 - i) & 1)
	}
	return levels
}

func TestReadCelsius(t *testing.T) {
	// GIVEN a conversion of 400 counts (100.0 degC)
	sck := gpio.NewFakeOutput()
	cs := gpio.NewFakeOutput()
	so := gpio.NewFakeInput(frameLevels(400 << 3)...)
	converter := NewConverter(sck, cs, so)

	// WHEN
	celsius, err := converter.ReadCelsius()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 100.0, celsius)
}

func TestReadCelsiusQuarterDegree(t *testing.T) {
	// GIVEN a conversion of 101 counts (25.25 degC)
	sck := gpio.NewFakeOutput()
	cs := gpio.NewFakeOutput()
	so := gpio.NewFakeInput(frameLevels(101 << 3)...)
	converter := NewConverter(sck, cs, so)

	// WHEN
	celsius, err := converter.ReadCelsius()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 25.25, celsius)
}

func TestReadCelsiusOpenCircuit(t *testing.T) {
	// GIVEN a frame with the open thermocouple flag set
	sck := gpio.NewFakeOutput()
	cs := gpio.NewFakeOutput()
	so := gpio.NewFakeInput(frameLevels(0b100)...)
	converter := NewConverter(sck, cs, so)

	// WHEN
	_, err := converter.ReadCelsius()

	// THEN
	assert.ErrorIs(t, err, ErrOpenCircuit)
}

func TestReadCelsiusLineSequencing(t *testing.T) {
	// GIVEN
	sck := gpio.NewFakeOutput()
	cs := gpio.NewFakeOutput()
	so := gpio.NewFakeInput(frameLevels(0)...)
	converter := NewConverter(sck, cs, so)

	// WHEN
	_, err := converter.ReadCelsius()
	assert.NoError(t, err)

	// THEN chip select frames the read
	assert.Equal(t, []int{0, 1}, cs.Writes)

	// THEN the clock pulses once per bit
	assert.Equal(t, 2*frameBits, len(sck.Writes))
	for i, level := range sck.Writes {
		if i%2 == 0 {
			assert.Equal(t, 1, level)
		} else {
			assert.Equal(t, 0, level)
		}
	}
}
