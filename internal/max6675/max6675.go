// Package max6675 reads K-type thermocouples through the MAX6675
// cold junction compensated converter.
//
// The converter has no command interface; holding chip select low
// clocks the latest conversion out as a 16 bit frame. Bits D14..D3
// carry the temperature in 0.25 degC steps, bit D2 is the open
// thermocouple flag.
package max6675

import (
	"errors"
	"fmt"

	"github.com/opensmoker/smokerd/internal/gpio"
)

const frameBits = 16

// ErrOpenCircuit is returned when the thermocouple is detached or broken.
var ErrOpenCircuit = errors.New("max6675: thermocouple open circuit")

// Converter bit-bangs a single MAX6675 over three GPIO lines.
type Converter struct {
	sck gpio.OutputLine
	cs  gpio.OutputLine
	so  gpio.InputLine
}

func NewConverter(sck gpio.OutputLine, cs gpio.OutputLine, so gpio.InputLine) *Converter {
	return &Converter{
		sck: sck,
		cs:  cs,
		so:  so,
	}
}

// ReadCelsius clocks one conversion frame out of the converter and
// decodes it. The MAX6675 updates its conversion at most every 220ms;
// reading faster than that returns the previous conversion, which is
// fine for a smoker.
func (c *Converter) ReadCelsius() (float64, error) {
	frame, err := c.readFrame()
	if err != nil {
		return 0, err
	}
	if frame&0b100 != 0 {
		return 0, ErrOpenCircuit
	}
	return float64(frame>>3) * 0.25, nil
}

func (c *Converter) readFrame() (uint16, error) {
	if err := c.cs.SetValue(0); err != nil {
		return 0, fmt.Errorf("assert chip select: %w", err)
	}
	// deassert ends the read and starts the next conversion
	defer func() { _ = c.cs.SetValue(1) }()

	var frame uint16
	for i := 0; i < frameBits; i++ {
		if err := c.sck.SetValue(1); err != nil {
			return 0, fmt.Errorf("clock high: %w", err)
		}
		bit, err := c.so.Value()
		if err != nil {
			return 0, fmt.Errorf("read data line: %w", err)
		}
		frame = frame<<1 | uint16(bit&1)
		if err := c.sck.SetValue(0); err != nil {
			return 0, fmt.Errorf("clock low: %w", err)
		}
	}
	return frame, nil
}
