package probe

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/max6675"
	"github.com/opensmoker/smokerd/internal/ui"
	"github.com/opensmoker/smokerd/internal/util"
)

var probeId string

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Print the current value of a probe",
	Long:  `Takes a single reading from the given probe and prints it in fahrenheit`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		value, err := readProbe(probeId)
		if err != nil {
			return err
		}

		fmt.Printf("%d", value)
		return nil
	},
}

func init() {
	valueCmd.Flags().StringVarP(
		&probeId,
		"id", "i",
		"",
		"Probe ID as specified in the config",
	)
	_ = valueCmd.MarkFlagRequired("id")
	Command.AddCommand(valueCmd)
}

// readProbe claims the probe's lines, takes one raw reading and converts
// it like the daemon would, offset included but without smoothing.
func readProbe(id string) (int, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(configPath); err != nil {
		ui.Fatal("%v", err)
	}

	var probeConfig *configuration.ProbeConfig
	availableProbeIds := []string{}
	for i, config := range configuration.CurrentConfig.Probes {
		availableProbeIds = append(availableProbeIds, config.ID)
		if config.ID == id {
			probeConfig = &configuration.CurrentConfig.Probes[i]
		}
	}
	if probeConfig == nil {
		return 0, fmt.Errorf("no probe with id found: %s, options: %s", id, availableProbeIds)
	}

	chip, err := gpio.OpenChip(configuration.CurrentConfig.Gpio.Chip)
	if err != nil {
		return 0, err
	}
	defer chip.Close()

	sck, err := chip.RequestOutput(probeConfig.Sck, 0)
	if err != nil {
		return 0, err
	}
	defer sck.Close()
	cs, err := chip.RequestOutput(probeConfig.Cs, 1)
	if err != nil {
		return 0, err
	}
	defer cs.Close()
	so, err := chip.RequestInput(probeConfig.So, gpio.PullNone)
	if err != nil {
		return 0, err
	}
	defer so.Close()

	celsius, err := max6675.NewConverter(sck, cs, so).ReadCelsius()
	if err != nil {
		return 0, err
	}
	return util.CelsiusToFahrenheit(celsius) + probeConfig.Offset, nil
}
