package setpoint

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/overrides"
	"github.com/opensmoker/smokerd/internal/ui"
	"github.com/opensmoker/smokerd/internal/util"
)

var (
	airTarget  int
	meatTarget int
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Adjust the target temperatures",
	Long: `Writes the parameters file the daemon watches for target changes.
Values are clamped to the configured limits`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.Fatal("%v", err)
		}

		if !cmd.Flags().Changed("air") && !cmd.Flags().Changed("meat") {
			return errors.New("nothing to set, pass --air and/or --meat")
		}

		// start from the last synced values so setting one target
		// leaves the other untouched
		path := configuration.CurrentConfig.Overrides.Path
		params, err := overrides.ReadFile(path)
		if err != nil {
			params = overrides.Parameters{
				AirTarget:  configuration.CurrentConfig.Limits.Air.Default,
				MeatTarget: configuration.CurrentConfig.Limits.Meat.Default,
			}
		}

		if cmd.Flags().Changed("air") {
			limits := configuration.CurrentConfig.Limits.Air
			params.AirTarget = int(util.Coerce(float64(airTarget), float64(limits.Min), float64(limits.Max)))
		}
		if cmd.Flags().Changed("meat") {
			limits := configuration.CurrentConfig.Limits.Meat
			params.MeatTarget = int(util.Coerce(float64(meatTarget), float64(limits.Min), float64(limits.Max)))
		}
		params.Timestamp = float64(time.Now().UnixNano()) / float64(time.Second)

		if err := overrides.WriteFile(path, params); err != nil {
			return err
		}
		ui.Info("Wrote targets to %s (air %d, meat %d)", path, params.AirTarget, params.MeatTarget)
		return nil
	},
}

func init() {
	setCmd.Flags().IntVarP(&airTarget, "air", "a", 0, "Air chamber target in fahrenheit")
	setCmd.Flags().IntVarP(&meatTarget, "meat", "m", 0, "Meat target in fahrenheit")
	Command.AddCommand(setCmd)
}
