package control

import (
	"context"
	"time"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/interlock"
	"github.com/opensmoker/smokerd/internal/probes"
	"github.com/opensmoker/smokerd/internal/relays"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
)

type Controller interface {
	Run(ctx context.Context) error
	// Cycle executes one pass of the control loop. Failures inside a pass
	// are logged and absorbed, the next tick starts from a clean slate.
	Cycle()
}

type smokerController struct {
	airTop    probes.Probe
	airBottom probes.Probe
	meat      probes.Probe

	setpoints *setpoints.Store
	interlock *interlock.Interlock
	pid       *PidLoop
	heater    *relays.Actuator
	fan       *relays.Actuator
	tracker   *status.Tracker

	updateRate  time.Duration
	fanDeltaOn  int
	fanDeltaOff int

	now func() time.Time
}

func NewController(
	airTop probes.Probe,
	airBottom probes.Probe,
	meat probes.Probe,
	store *setpoints.Store,
	lock *interlock.Interlock,
	heater *relays.Actuator,
	fan *relays.Actuator,
	tracker *status.Tracker,
	config configuration.ControlConfig,
) Controller {
	return &smokerController{
		airTop:      airTop,
		airBottom:   airBottom,
		meat:        meat,
		setpoints:   store,
		interlock:   lock,
		pid:         NewPidLoop(config.Pid.P, config.Pid.I, config.Pid.D),
		heater:      heater,
		fan:         fan,
		tracker:     tracker,
		updateRate:  config.ControlLoopRate,
		fanDeltaOn:  config.FanDeltaOn,
		fanDeltaOff: config.FanDeltaOff,
		now:         time.Now,
	}
}

func (c *smokerController) Run(ctx context.Context) error {
	ui.Info("Starting control loop (cycle %v)...", c.updateRate)

	tick := time.Tick(c.updateRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			c.Cycle()
		}
	}
}

func (c *smokerController) Cycle() {
	// Sample every registered probe so passive monitoring channels keep
	// their windows warm, even though only three feed the control logic.
	for _, probe := range probes.ProbeMap.Items() {
		probe.Measure()
	}

	airTop := c.airTop.Value()
	airBottom := c.airBottom.Value()
	meat := c.meat.Value()

	c.interlock.Poll()
	c.interlock.CheckOverTemp(airTop, airBottom, meat)

	if c.interlock.Enabled() && !c.interlock.Latched() {
		c.driveHeater(airTop, meat)
		c.driveFan(airTop, airBottom)
	} else {
		// Outputs drop immediately, skipping the minimum cycle time.
		// PID state stays frozen until the system is enabled again.
		if err := c.heater.ForceOff(); err != nil {
			ui.Warning("Failed to force heater off: %v", err)
		}
		if err := c.fan.ForceOff(); err != nil {
			ui.Warning("Failed to force circulation fan off: %v", err)
		}
	}

	c.publish(airTop, airBottom, meat)
}

func (c *smokerController) driveHeater(airTop int, meat int) {
	airTarget := c.setpoints.Air()
	meatTarget := c.setpoints.Meat()

	// Meat at or past its target pulls the chamber down to holding
	// temperature. Recomputed every cycle, the configured air target
	// takes over again as soon as the meat reading falls back.
	if meat >= meatTarget {
		airTarget = meatTarget
	}

	output := c.pid.Loop(float64(airTarget), float64(airTop))
	ui.Debug("PID: target %d, measured %d, output %.2f", airTarget, airTop, output)

	if err := c.heater.Apply(output > 0); err != nil {
		ui.Warning("Failed to switch heater: %v", err)
	}
}

func (c *smokerController) driveFan(airTop int, airBottom int) {
	delta := airTop - airBottom
	if delta < 0 {
		delta = -delta
	}

	desired := c.fan.On()
	if !desired && delta > c.fanDeltaOn {
		desired = true
	} else if desired && delta <= c.fanDeltaOff {
		desired = false
	}

	if err := c.fan.Apply(desired); err != nil {
		ui.Warning("Failed to switch circulation fan: %v", err)
	}
}

func (c *smokerController) publish(airTop int, airBottom int, meat int) {
	c.tracker.Update(status.Snapshot{
		AirTop:           airTop,
		AirBottom:        airBottom,
		Meat1:            meat,
		AirTopFaulted:    c.airTop.Faulted(),
		AirBottomFaulted: c.airBottom.Faulted(),
		Meat1Faulted:     c.meat.Faulted(),
		AirTarget:        c.setpoints.Air(),
		Meat1Target:      c.setpoints.Meat(),
		SelectedTarget:   c.setpoints.Selected(),
		SystemEnabled:    c.interlock.Enabled(),
		Emergency:        c.interlock.Latched(),
		RunTimeSeconds:   int64(c.interlock.RunTime().Seconds()),
		HeaterOn:         c.heater.On(),
		FanOn:            c.fan.On(),
		Time:             c.now(),
	})
}
