package relays

import (
	"fmt"
	"sync"
	"time"

	"github.com/opensmoker/smokerd/internal/gpio"
)

// Relay drives one relay board channel.
type Relay interface {
	GetId() string

	// Set drives the relay to the given state. Setting the current
	// state again is a no-op and does not count as a change.
	Set(on bool) error

	// Get returns the currently commanded state.
	Get() bool

	// LastChange returns the time of the last state change.
	LastChange() time.Time
}

type gpioRelay struct {
	id   string
	line gpio.OutputLine
	now  func() time.Time

	mu         sync.Mutex
	on         bool
	lastChange time.Time
}

func NewRelay(id string, line gpio.OutputLine) Relay {
	return &gpioRelay{
		id:   id,
		line: line,
		now:  time.Now,
	}
}

func (r *gpioRelay) GetId() string {
	return r.id
}

func (r *gpioRelay) Set(on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if on == r.on {
		return nil
	}

	level := 0
	if on {
		level = 1
	}
	if err := r.line.SetValue(level); err != nil {
		return fmt.Errorf("set relay %s: %w", r.id, err)
	}

	r.on = on
	r.lastChange = r.now()
	return nil
}

func (r *gpioRelay) Get() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.on
}

func (r *gpioRelay) LastChange() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastChange
}
