package probe

import (
	"bytes"
	"strconv"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/opensmoker/smokerd/cmd/global"
	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured probes",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.Fatal("%v", err)
		}

		var rows [][]string
		for _, probeConfig := range configuration.CurrentConfig.Probes {
			rows = append(rows, []string{
				probeConfig.ID,
				strconv.Itoa(probeConfig.Sck),
				strconv.Itoa(probeConfig.Cs),
				strconv.Itoa(probeConfig.So),
				strconv.Itoa(probeConfig.Offset),
			})
		}

		tab := table.Table{
			Headers: []string{"ID", "SCK", "CS", "SO", "Offset"},
			Rows:    rows,
		}

		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
