package relays

import "time"

// Actuator rate limits state changes of a relay. Mechanical relays
// and the heating element must not chatter on noisy control output,
// so a commanded change inside the minimum cycle time is dropped,
// not queued.
type Actuator struct {
	relay        Relay
	minCycleTime time.Duration
	now          func() time.Time
}

func NewActuator(relay Relay, minCycleTime time.Duration) *Actuator {
	return &Actuator{
		relay:        relay,
		minCycleTime: minCycleTime,
		now:          time.Now,
	}
}

// Apply requests the desired relay state. The request is dropped
// while the relay is inside its minimum cycle time.
func (a *Actuator) Apply(desired bool) error {
	if desired == a.relay.Get() {
		return nil
	}
	last := a.relay.LastChange()
	if !last.IsZero() && a.now().Sub(last) < a.minCycleTime {
		return nil
	}
	return a.relay.Set(desired)
}

// ForceOff switches the relay off immediately, bypassing the minimum
// cycle time. Used when the interlock disables the system.
func (a *Actuator) ForceOff() error {
	return a.relay.Set(false)
}

// On returns the currently commanded relay state.
func (a *Actuator) On() bool {
	return a.relay.Get()
}
