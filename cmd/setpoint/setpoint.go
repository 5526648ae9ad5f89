package setpoint

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "setpoint",
	Short:            "Setpoint related commands",
	Long:             ``,
	TraverseChildren: true,
}
