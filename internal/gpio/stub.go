//go:build !linux

package gpio

import "errors"

// OpenChip returns an error on non-Linux platforms.
func OpenChip(name string) (Chip, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// DetectChips returns an error on non-Linux platforms.
func DetectChips() ([]ChipSnapshot, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}
