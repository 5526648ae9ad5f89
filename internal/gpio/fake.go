package gpio

import "errors"

// FakeInput is a test double that returns scripted raw line levels.
type FakeInput struct {
	// Levels contains scripted raw levels to return.
	// Each call to Value() consumes the next level; the last one
	// repeats once the script is exhausted.
	Levels []int

	// index tracks current position in Levels
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Value()
	ReadError error
}

// NewFakeInput creates a FakeInput with the given scripted levels.
func NewFakeInput(levels ...int) *FakeInput {
	return &FakeInput{Levels: levels}
}

func (f *FakeInput) Value() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Levels) == 0 {
		return 0, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}
	return level, nil
}

func (f *FakeInput) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the input to the beginning of its script.
func (f *FakeInput) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeOutput records every level driven onto it.
type FakeOutput struct {
	// Writes contains all levels driven so far, in order.
	Writes []int

	// Closed tracks if Close was called
	Closed bool

	// WriteError, if set, will be returned by SetValue()
	WriteError error
}

func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

func (f *FakeOutput) SetValue(value int) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, value)
	return nil
}

// Last returns the most recently driven level, or def when nothing
// has been written yet.
func (f *FakeOutput) Last(def int) int {
	if len(f.Writes) == 0 {
		return def
	}
	return f.Writes[len(f.Writes)-1]
}

func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// FakeChip hands out fake lines keyed by offset, creating them on
// demand. Pre-populate Inputs to script specific lines.
type FakeChip struct {
	Inputs  map[int]*FakeInput
	Outputs map[int]*FakeOutput
	Closed  bool
}

func NewFakeChip() *FakeChip {
	return &FakeChip{
		Inputs:  map[int]*FakeInput{},
		Outputs: map[int]*FakeOutput{},
	}
}

func (c *FakeChip) RequestInput(offset int, pull Pull) (InputLine, error) {
	if in, ok := c.Inputs[offset]; ok {
		return in, nil
	}
	// unscripted inputs idle high, matching active-low wiring
	in := NewFakeInput(1)
	c.Inputs[offset] = in
	return in, nil
}

func (c *FakeChip) RequestOutput(offset int, initial int) (OutputLine, error) {
	if out, ok := c.Outputs[offset]; ok {
		return out, nil
	}
	out := NewFakeOutput()
	c.Outputs[offset] = out
	return out, nil
}

func (c *FakeChip) Close() error {
	c.Closed = true
	return nil
}
