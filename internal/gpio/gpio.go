// Package gpio provides access to GPIO lines with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Pull configures the bias applied to a requested input line.
type Pull int

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// InputLine reads the raw level of a single GPIO line.
// Buttons and the run switch are wired active-low: raw 0 = pressed/on.
type InputLine interface {
	// Value returns the raw line level, 0 or 1.
	Value() (int, error)

	// Close releases the line.
	Close() error
}

// OutputLine drives the raw level of a single GPIO line.
type OutputLine interface {
	// SetValue drives the line to the given raw level, 0 or 1.
	SetValue(value int) error

	// Close releases the line.
	Close() error
}

// LineSnapshot describes one line of a detected chip.
type LineSnapshot struct {
	Offset   int
	Name     string
	Consumer string
	Used     bool
	IsOut    bool
}

// ChipSnapshot describes one detected GPIO character device.
type ChipSnapshot struct {
	Name  string
	Label string
	Lines []LineSnapshot
}

// Chip hands out lines of a single GPIO character device.
type Chip interface {
	// RequestInput claims the line at the given offset as an input
	// with the given bias.
	RequestInput(offset int, pull Pull) (InputLine, error)

	// RequestOutput claims the line at the given offset as an output
	// driven to the given initial level.
	RequestOutput(offset int, initial int) (OutputLine, error)

	// Close releases the chip. Lines requested from it must be
	// closed separately.
	Close() error
}
