package history

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "history",
	Short:            "Recorded telemetry related commands",
	Long:             ``,
	TraverseChildren: true,
}
