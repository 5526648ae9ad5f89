// Package overrides syncs the target temperatures with a shared parameters
// file. External tools edit the file to adjust a running cook; the daemon
// writes it back whenever the targets change locally so both sides stay in
// agreement. The file is never loaded at startup, a reboot always begins
// with the configured defaults.
package overrides

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/natefinch/atomic"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/ui"
)

// Parameters is the content of the shared file. Timestamp is unix seconds
// of the last write and decides whether an edit is still fresh enough to
// take effect.
type Parameters struct {
	AirTarget  int     `json:"temp_air_target"`
	MeatTarget int     `json:"temp_meat_1_target"`
	Timestamp  float64 `json:"timestamp"`
}

// ReadFile loads and parses a parameters file.
func ReadFile(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, err
	}
	var params Parameters
	if err := json.Unmarshal(data, &params); err != nil {
		return Parameters{}, err
	}
	return params, nil
}

// WriteFile writes a parameters file atomically so a concurrent reader
// never sees a partial document.
func WriteFile(path string, params Parameters) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// Syncer mirrors the setpoint store to the parameters file and back.
type Syncer struct {
	config configuration.OverridesConfig
	store  *setpoints.Store

	lastAir   int
	lastMeat  int
	lastMtime time.Time

	now func() time.Time
}

func NewSyncer(config configuration.OverridesConfig, store *setpoints.Store) *Syncer {
	return &Syncer{
		config: config,
		store:  store,
		now:    time.Now,
	}
}

// Run polls for external edits and saves local changes until the context is
// cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	s.prime()

	saveTicker := time.NewTicker(s.config.SaveInterval)
	defer saveTicker.Stop()
	pollTicker := time.NewTicker(s.config.PollInterval)
	defer pollTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-saveTicker.C:
			s.save()
		case <-pollTicker.C:
			s.poll()
		}
	}
}

// prime takes note of the current targets and file mtime so neither an
// unchanged store nor a pre-existing file triggers a sync.
func (s *Syncer) prime() {
	s.lastAir = s.store.Air()
	s.lastMeat = s.store.Meat()
	if fi, err := os.Stat(s.config.Path); err == nil {
		s.lastMtime = fi.ModTime()
	}
}

// save writes the parameters file when the targets changed since the last
// sync, no matter whether a button, the api or the bridge changed them.
func (s *Syncer) save() {
	air := s.store.Air()
	meat := s.store.Meat()
	if air == s.lastAir && meat == s.lastMeat {
		return
	}

	params := Parameters{
		AirTarget:  air,
		MeatTarget: meat,
		Timestamp:  float64(s.now().UnixNano()) / float64(time.Second),
	}
	if err := WriteFile(s.config.Path, params); err != nil {
		ui.Warning("Unable to write parameters file %s: %v", s.config.Path, err)
		return
	}
	s.lastAir = air
	s.lastMeat = meat
	// remember our own write so poll does not read it back
	if fi, err := os.Stat(s.config.Path); err == nil {
		s.lastMtime = fi.ModTime()
	}
	ui.Debug("Saved targets to %s (air %d, meat %d)", s.config.Path, air, meat)
}

// poll applies an externally edited parameters file. Stale edits are ignored
// so a file left over from a previous cook cannot hijack the targets.
func (s *Syncer) poll() {
	fi, err := os.Stat(s.config.Path)
	if err != nil {
		return
	}
	if !fi.ModTime().After(s.lastMtime) {
		return
	}
	s.lastMtime = fi.ModTime()

	params, err := ReadFile(s.config.Path)
	if err != nil {
		ui.Warning("Unable to read parameters file %s: %v", s.config.Path, err)
		return
	}

	age := s.now().Sub(time.Unix(0, int64(params.Timestamp*float64(time.Second))))
	if age > s.config.MaxAge {
		ui.Warning("Ignoring stale parameters file %s (age %s)", s.config.Path, age.Round(time.Second))
		return
	}

	s.lastAir = s.store.Set(setpoints.TargetAir, params.AirTarget)
	s.lastMeat = s.store.Set(setpoints.TargetMeat, params.MeatTarget)
	ui.Info("Applied targets from %s (air %d, meat %d)", s.config.Path, s.lastAir, s.lastMeat)
}
