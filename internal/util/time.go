package util

import "fmt"

// FormatHMS renders a second count as HH:MM:SS.
// Hours grow past two digits on long cooks instead of wrapping.
func FormatHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
