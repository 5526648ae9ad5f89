package configuration

import "time"

type OverridesConfig struct {
	Enabled bool `json:"enabled"`
	// Path of the shared parameters file. External tools may edit
	// it to adjust the target temperatures while a cook is running.
	Path string `json:"path"`
	// SaveInterval between checks for locally changed targets that
	// need to be written back to the file.
	SaveInterval time.Duration `json:"saveInterval"`
	// PollInterval between mtime checks for external edits.
	PollInterval time.Duration `json:"pollInterval"`
	// MaxAge after which an externally edited file is considered
	// stale and ignored.
	MaxAge time.Duration `json:"maxAge"`
}
