// Package display renders the four line front panel view of the controller
// state. The frame layout matches the 20x4 character LCD on the original
// control board; the console sink mirrors the same frame for headless runs.
package display

import (
	"context"
	"fmt"
	"time"

	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
	"github.com/opensmoker/smokerd/internal/util"
)

const (
	// Width is the character width of one frame line.
	Width = 20
	// Lines is the number of frame lines.
	Lines = 4
)

// Frame is one full refresh of the front panel, Lines rows of exactly
// Width characters each.
type Frame [Lines]string

// Render formats a status snapshot into a frame.
func Render(snap status.Snapshot) Frame {
	return Frame{
		renderTitle(snap),
		renderAir(snap),
		renderMeat(snap),
		renderSystem(snap),
	}
}

func renderTitle(snap status.Snapshot) string {
	switch {
	case snap.Emergency:
		return pad("** OVER TEMP **")
	case snap.SystemEnabled:
		return pad("Timer: " + util.FormatHMS(snap.RunTimeSeconds))
	default:
		return pad("OpenSmoker")
	}
}

func renderAir(snap status.Snapshot) string {
	line := fmt.Sprintf("Air:  %3d-%3d > %d", snap.AirBottom, snap.AirTop, snap.AirTarget)
	return pad(line + marker(snap, setpoints.TargetAir))
}

func renderMeat(snap status.Snapshot) string {
	line := fmt.Sprintf("Meat: %3d     > %d", snap.Meat1, snap.Meat1Target)
	return pad(line + marker(snap, setpoints.TargetMeat))
}

func renderSystem(snap status.Snapshot) string {
	return pad(fmt.Sprintf("Sys:%-4sH:%-4sF:%-4s",
		onOff(snap.SystemEnabled), onOff(snap.HeaterOn), onOff(snap.FanOn)))
}

// marker flags the setpoint the front panel buttons currently act on.
func marker(snap status.Snapshot, target setpoints.Target) string {
	if snap.SelectedTarget == target {
		return "*"
	}
	return " "
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// pad fills a line with spaces up to Width so stale characters from the
// previous frame never survive a refresh.
func pad(line string) string {
	if len(line) > Width {
		return line[:Width]
	}
	return fmt.Sprintf("%-*s", Width, line)
}

// Display is a sink for rendered frames.
type Display interface {
	Show(frame Frame) error
}

// consoleDisplay writes frames through the ui log so the panel content
// shows up in journald and on an attached terminal.
type consoleDisplay struct {
	last Frame
}

func NewConsoleDisplay() Display {
	return &consoleDisplay{}
}

func (d *consoleDisplay) Show(frame Frame) error {
	if frame == d.last {
		return nil
	}
	d.last = frame
	ui.Printfln("%s | %s | %s | %s", frame[0], frame[1], frame[2], frame[3])
	return nil
}

// Refresher periodically renders the latest snapshot onto a display.
type Refresher struct {
	display Display
	tracker *status.Tracker
	rate    time.Duration
}

func NewRefresher(display Display, tracker *status.Tracker, rate time.Duration) *Refresher {
	return &Refresher{
		display: display,
		tracker: tracker,
		rate:    rate,
	}
}

func (r *Refresher) Run(ctx context.Context) error {
	tick := time.Tick(r.rate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			if err := r.display.Show(Render(r.tracker.Snapshot())); err != nil {
				ui.Warning("Failed to refresh display: %v", err)
			}
		}
	}
}
