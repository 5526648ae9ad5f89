package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/oklog/run"

	"github.com/opensmoker/smokerd/internal/alert"
	"github.com/opensmoker/smokerd/internal/api"
	"github.com/opensmoker/smokerd/internal/bridge"
	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/control"
	"github.com/opensmoker/smokerd/internal/display"
	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/input"
	"github.com/opensmoker/smokerd/internal/interlock"
	"github.com/opensmoker/smokerd/internal/max6675"
	"github.com/opensmoker/smokerd/internal/overrides"
	"github.com/opensmoker/smokerd/internal/persistence"
	"github.com/opensmoker/smokerd/internal/probes"
	"github.com/opensmoker/smokerd/internal/relays"
	"github.com/opensmoker/smokerd/internal/setpoints"
	"github.com/opensmoker/smokerd/internal/statistics"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/telemetry"
	"github.com/opensmoker/smokerd/internal/ui"
	"github.com/opensmoker/smokerd/internal/util"
)

const (
	// bridgeTelemetryRate is how often the serial bridge writes a status line.
	bridgeTelemetryRate = time.Second
	// displayRefreshRate is how often the front panel display is redrawn.
	displayRefreshRate = time.Second
)

// Devices holds every piece of hardware the daemon drives, built from the
// configured GPIO offsets.
type Devices struct {
	AirTop    probes.Probe
	AirBottom probes.Probe
	Meat      probes.Probe

	MenuLine     gpio.InputLine
	IncreaseLine gpio.InputLine
	DecreaseLine gpio.InputLine
	SwitchLine   gpio.InputLine

	Heater relays.Relay
	Fan    relays.Relay

	lines []io.Closer
}

func (d *Devices) track(line io.Closer) {
	d.lines = append(d.lines, line)
}

// Close releases every claimed line. Output lines fall back to inputs as
// they are released, so both relays drop out.
func (d *Devices) Close() {
	for _, line := range d.lines {
		_ = line.Close()
	}
}

// BuildDevices claims every configured GPIO line and registers the probes
// in the probe registry.
func BuildDevices(chip gpio.Chip, config configuration.Configuration) (*Devices, error) {
	devices := &Devices{}

	for _, probeConfig := range config.Probes {
		sck, err := chip.RequestOutput(probeConfig.Sck, 0)
		if err != nil {
			return nil, fmt.Errorf("probe %s sck: %w", probeConfig.ID, err)
		}
		devices.track(sck)
		cs, err := chip.RequestOutput(probeConfig.Cs, 1)
		if err != nil {
			return nil, fmt.Errorf("probe %s cs: %w", probeConfig.ID, err)
		}
		devices.track(cs)
		so, err := chip.RequestInput(probeConfig.So, gpio.PullNone)
		if err != nil {
			return nil, fmt.Errorf("probe %s so: %w", probeConfig.ID, err)
		}
		devices.track(so)

		probe := probes.NewProbe(probeConfig, max6675.NewConverter(sck, cs, so))
		probes.ProbeMap.Set(probeConfig.ID, probe)

		switch probeConfig.ID {
		case configuration.ProbeAirTop:
			devices.AirTop = probe
		case configuration.ProbeAirBottom:
			devices.AirBottom = probe
		case configuration.ProbeMeat1:
			devices.Meat = probe
		}
	}
	if devices.AirTop == nil || devices.AirBottom == nil || devices.Meat == nil {
		return nil, fmt.Errorf("missing one of the required probes %s, %s, %s",
			configuration.ProbeAirTop, configuration.ProbeAirBottom, configuration.ProbeMeat1)
	}

	var err error
	if devices.MenuLine, err = chip.RequestInput(config.Buttons.Menu, gpio.PullUp); err != nil {
		return nil, fmt.Errorf("menu button: %w", err)
	}
	devices.track(devices.MenuLine)
	if devices.IncreaseLine, err = chip.RequestInput(config.Buttons.Increase, gpio.PullUp); err != nil {
		return nil, fmt.Errorf("increase button: %w", err)
	}
	devices.track(devices.IncreaseLine)
	if devices.DecreaseLine, err = chip.RequestInput(config.Buttons.Decrease, gpio.PullUp); err != nil {
		return nil, fmt.Errorf("decrease button: %w", err)
	}
	devices.track(devices.DecreaseLine)
	if devices.SwitchLine, err = chip.RequestInput(config.Switch.Pin, gpio.PullUp); err != nil {
		return nil, fmt.Errorf("run switch: %w", err)
	}
	devices.track(devices.SwitchLine)

	// both relays start de-energized
	heaterLine, err := chip.RequestOutput(config.Relays.Heater, 0)
	if err != nil {
		return nil, fmt.Errorf("heater relay: %w", err)
	}
	devices.track(heaterLine)
	devices.Heater = relays.NewRelay("heater", heaterLine)

	fanLine, err := chip.RequestOutput(config.Relays.Fan, 0)
	if err != nil {
		return nil, fmt.Errorf("fan relay: %w", err)
	}
	devices.track(fanLine)
	devices.Fan = relays.NewRelay("fan", fanLine)

	return devices, nil
}

func registerCollectors(store *setpoints.Store, tracker *status.Tracker) {
	items := probes.ProbeMap.Items()
	probeList := make([]probes.Probe, 0, len(items))
	for _, id := range util.SortedKeys(items) {
		probeList = append(probeList, items[id])
	}

	statistics.Register(statistics.NewProbeCollector(probeList))
	statistics.Register(statistics.NewSetpointCollector(store))
	statistics.Register(statistics.NewControlCollector(tracker))
	statistics.Register(statistics.NewBoardCollector(statistics.DefaultThermalZonePath))
}

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if configuration.CurrentConfig.History.Enabled {
		if err := pers.Init(); err != nil {
			ui.Fatal("Failed to initialize persistence: %v", err)
		}
	}

	chip, err := gpio.OpenChip(configuration.CurrentConfig.Gpio.Chip)
	if err != nil {
		ui.Fatal("Unable to open GPIO chip %s: %v", configuration.CurrentConfig.Gpio.Chip, err)
	}

	devices, err := BuildDevices(chip, configuration.CurrentConfig)
	if err != nil {
		ui.Fatal("Unable to claim GPIO lines: %v", err)
	}

	store := setpoints.NewStore(
		configuration.CurrentConfig.Limits.Air,
		configuration.CurrentConfig.Limits.Meat,
	)
	tracker := status.NewTracker()
	lock := interlock.NewInterlock(devices.SwitchLine, configuration.CurrentConfig.Control.EmergencyTemp)
	heater := relays.NewActuator(devices.Heater, configuration.CurrentConfig.Control.MinHeaterCycleTime)
	fan := relays.NewActuator(devices.Fan, configuration.CurrentConfig.Control.MinFanCycleTime)

	smoker := control.NewController(
		devices.AirTop,
		devices.AirBottom,
		devices.Meat,
		store,
		lock,
		heater,
		fan,
		tracker,
		configuration.CurrentConfig.Control,
	)

	registerCollectors(store, tracker)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			err := smoker.Run(ctx)
			ui.Info("Control loop stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error running control loop: %v", err)
			}
		})
	}
	{
		// === front panel buttons
		monitor := input.NewMonitor(
			configuration.CurrentConfig.Control.InputLoopRate,
			devices.MenuLine,
			devices.IncreaseLine,
			devices.DecreaseLine,
			store,
		)
		g.Add(func() error {
			err := monitor.Run(ctx)
			ui.Info("Input monitor stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error monitoring buttons: %v", err)
			}
		})
	}
	{
		// === front panel display
		if configuration.CurrentConfig.Display.Enabled {
			refresher := display.NewRefresher(display.NewConsoleDisplay(), tracker, displayRefreshRate)
			g.Add(func() error {
				err := refresher.Run(ctx)
				ui.Info("Display refresher stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error refreshing display: %v", err)
				}
			})
		}
	}
	{
		// === history recorder
		if configuration.CurrentConfig.History.Enabled {
			recorder := persistence.NewRecorder(pers, tracker, configuration.CurrentConfig.History)
			g.Add(func() error {
				err := recorder.Run(ctx)
				ui.Info("History recorder stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error recording history: %v", err)
				}
			})
		}
	}
	{
		// === REST api
		if configuration.CurrentConfig.Api.Enabled {
			restServer := api.CreateRestService(tracker, store, pers)
			restServer.Use(echoprometheus.NewMiddleware("smokerd_api"))
			g.Add(func() error {
				go func() {
					addr := fmt.Sprintf("%s:%d", configuration.CurrentConfig.Api.Host, configuration.CurrentConfig.Api.Port)
					if err := restServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
						ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					}
				}()
				<-ctx.Done()
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return restServer.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === Prometheus Exporter
		if configuration.CurrentConfig.Statistics.Enabled {
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9000
				}
				metricsServer := echo.New()
				metricsServer.HideBanner = true
				metricsServer.HidePort = true
				metricsServer.GET("/metrics", echoprometheus.NewHandler())
				go func() {
					addr := fmt.Sprintf(":%d", port)
					if err := metricsServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
						ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					}
				}()
				<-ctx.Done()
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return metricsServer.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		// === MQTT telemetry
		if configuration.CurrentConfig.Mqtt.Enabled {
			publisher, err := telemetry.NewMqttPublisher(configuration.CurrentConfig.Mqtt)
			if err != nil {
				ui.Fatal("Unable to set up MQTT: %v", err)
			}
			reporter := telemetry.NewReporter(publisher, tracker, configuration.CurrentConfig.Mqtt.PublishInterval)
			g.Add(func() error {
				err := reporter.Run(ctx)
				_ = publisher.Close()
				ui.Info("Telemetry reporter stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error publishing telemetry: %v", err)
				}
			})
		}
	}
	{
		// === serial bridge
		if configuration.CurrentConfig.Bridge.Enabled {
			serialBridge := bridge.NewBridge(configuration.CurrentConfig.Bridge, tracker, store, bridgeTelemetryRate)
			g.Add(func() error {
				err := serialBridge.Run(ctx)
				ui.Info("Serial bridge stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error running serial bridge: %v", err)
				}
			})
		}
	}
	{
		// === remote overrides
		if configuration.CurrentConfig.Overrides.Enabled {
			syncer := overrides.NewSyncer(configuration.CurrentConfig.Overrides, store)
			g.Add(func() error {
				err := syncer.Run(ctx)
				ui.Info("Overrides syncer stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error syncing overrides: %v", err)
				}
			})
		}
	}
	{
		// === email alerts
		if configuration.CurrentConfig.Alert.Enabled {
			sender := alert.NewMailgunSender(configuration.CurrentConfig.Alert.Mailgun)
			monitor := alert.NewMonitor(sender, tracker)
			g.Add(func() error {
				err := monitor.Run(ctx)
				ui.Info("Alert monitor stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error monitoring alerts: %v", err)
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()

	// leave the cooker in a safe state before releasing the lines
	_ = heater.ForceOff()
	_ = fan.ForceOff()
	devices.Close()
	_ = chip.Close()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
	os.Exit(0)
}
