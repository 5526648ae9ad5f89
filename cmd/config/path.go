package config

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/opensmoker/smokerd/internal/configuration"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the used configuration file",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		path := configuration.DetectAndReadConfigFile()
		fmt.Printf("%s", path)
		return nil
	},
}

func init() {
	Command.AddCommand(pathCmd)
}
