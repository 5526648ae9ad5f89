package setpoint

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/overrides"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the target temperatures",
	Long: `Prints the last targets synced to the parameters file, or the
configured defaults when no sync has happened yet`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		configuration.DetectAndReadConfigFile()
		configuration.LoadConfig()

		air := configuration.CurrentConfig.Limits.Air.Default
		meat := configuration.CurrentConfig.Limits.Meat.Default
		if params, err := overrides.ReadFile(configuration.CurrentConfig.Overrides.Path); err == nil {
			air = params.AirTarget
			meat = params.MeatTarget
		}

		fmt.Printf("air: %d\nmeat: %d\n", air, meat)
		return nil
	},
}

func init() {
	Command.AddCommand(getCmd)
}
