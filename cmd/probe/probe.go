package probe

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "probe",
	Short:            "Probe related commands",
	Long:             ``,
	TraverseChildren: true,
}
