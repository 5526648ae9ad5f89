//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// realChip wraps a Linux GPIO character device.
type realChip struct {
	chip *gpiocdev.Chip
}

// DetectChips enumerates every GPIO character device in the system.
func DetectChips() ([]ChipSnapshot, error) {
	var result []ChipSnapshot
	for _, name := range gpiocdev.Chips() {
		chip, err := gpiocdev.NewChip(name)
		if err != nil {
			continue
		}

		snapshot := ChipSnapshot{
			Name:  chip.Name,
			Label: chip.Label,
		}
		for offset := 0; offset < chip.Lines(); offset++ {
			info, err := chip.LineInfo(offset)
			if err != nil {
				continue
			}
			snapshot.Lines = append(snapshot.Lines, LineSnapshot{
				Offset:   offset,
				Name:     info.Name,
				Consumer: info.Consumer,
				Used:     info.Used,
				IsOut:    info.Config.Direction == gpiocdev.LineDirectionOutput,
			})
		}
		_ = chip.Close()

		result = append(result, snapshot)
	}
	return result, nil
}

// OpenChip opens a GPIO character device by name, e.g. "gpiochip0".
func OpenChip(name string) (Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", name, err)
	}
	return &realChip{chip: chip}, nil
}

func (c *realChip) RequestInput(offset int, pull Pull) (InputLine, error) {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	switch pull {
	case PullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case PullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	}

	line, err := c.chip.RequestLine(offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("request input line %d: %w", offset, err)
	}
	return &realLine{line: line}, nil
}

func (c *realChip) RequestOutput(offset int, initial int) (OutputLine, error) {
	line, err := c.chip.RequestLine(offset, gpiocdev.AsOutput(initial))
	if err != nil {
		return nil, fmt.Errorf("request output line %d: %w", offset, err)
	}
	return &realLine{line: line}, nil
}

func (c *realChip) Close() error {
	return c.chip.Close()
}

type realLine struct {
	line *gpiocdev.Line
}

func (l *realLine) Value() (int, error) {
	return l.line.Value()
}

func (l *realLine) SetValue(value int) error {
	return l.line.SetValue(value)
}

// Close reconfigures the line as a plain input before releasing it so
// relay lines drop out instead of holding their last driven level
// after the process exits.
func (l *realLine) Close() error {
	_ = l.line.Reconfigure(gpiocdev.AsInput)
	return l.line.Close()
}
