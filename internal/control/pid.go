package control

import (
	"time"

	"github.com/opensmoker/smokerd/internal/util"
)

const (
	// integralLimit bounds the accumulated integral error in both directions.
	integralLimit = 100.0
	// minDt is the smallest time delta fed into the integral and derivative
	// terms. Evaluations closer together than this are treated as minDt apart
	// so the derivative cannot blow up on a fast double tick.
	minDt = 0.01
	// firstDt is assumed for the very first evaluation, which has no
	// reference point to compute a real delta from.
	firstDt = 1.0
)

// PidLoop computes the heater drive signal from the smoothed chamber
// temperature. The output is the raw sum of the three terms, any positive
// value is a call for heat.
type PidLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64

	// accumulated integral error, kept within [-integralLimit, integralLimit]
	integral float64
	// error of the previous evaluation
	lastError float64
	// time of the previous evaluation
	lastTime time.Time

	now func() time.Time
}

func NewPidLoop(p, i, d float64) *PidLoop {
	return &PidLoop{
		p:   p,
		i:   i,
		d:   d,
		now: time.Now,
	}
}

// Loop advances the pid loop by one evaluation and returns the new output.
// State carries over between calls; a pause between evaluations simply shows
// up as a large dt on the next one.
func (p *PidLoop) Loop(target float64, measured float64) float64 {
	loopTime := p.now()

	dt := firstDt
	if !p.lastTime.IsZero() {
		dt = loopTime.Sub(p.lastTime).Seconds()
		if dt < minDt {
			dt = minDt
		}
	}

	err := target - measured

	proportionalTerm := p.p * err

	p.integral = util.Coerce(p.integral+err*dt, -integralLimit, integralLimit)
	integralTerm := p.i * p.integral

	derivativeTerm := p.d * (err - p.lastError) / dt

	p.lastError = err
	p.lastTime = loopTime

	return proportionalTerm + integralTerm + derivativeTerm
}
