package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/opensmoker/smokerd/cmd/global"
	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/gpio"
	"github.com/opensmoker/smokerd/internal/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect GPIO chips",
	Long:  `Detects all GPIO chips and prints their lines as a list, annotated with the pin assignments of the current configuration`,
	Run: func(cmd *cobra.Command, args []string) {
		configuration.ReadConfigFileIfPresent()
		configuration.LoadConfig()

		chips, err := gpio.DetectChips()
		if err != nil {
			ui.Fatal("Unable to detect GPIO chips: %v", err)
		}

		owners := pinOwners(configuration.CurrentConfig)

		// === Print detected chips ===
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		for _, chip := range chips {
			ui.Printfln("> %s (%s, %d lines)", chip.Name, chip.Label, len(chip.Lines))

			var rows [][]string
			for _, line := range chip.Lines {
				direction := "in"
				if line.IsOut {
					direction = "out"
				}
				used := ""
				if line.Used {
					used = "x"
				}
				owner := ""
				if chip.Name == configuration.CurrentConfig.Gpio.Chip {
					owner = owners[line.Offset]
				}
				rows = append(rows, []string{
					strconv.Itoa(line.Offset), line.Name, line.Consumer, direction, used, owner,
				})
			}

			linesTable := table.Table{
				Headers: []string{"Offset", "Name", "Consumer", "Dir", "Used", "Config"},
				Rows:    rows,
			}

			var buf bytes.Buffer
			if err := linesTable.WriteTable(&buf, tableConfig); err != nil {
				panic(err)
			}
			ui.Printfln(buf.String())
		}
	},
}

// pinOwners maps configured BCM offsets to what the daemon uses them for.
func pinOwners(config configuration.Configuration) map[int]string {
	owners := map[int]string{}
	for _, probeConfig := range config.Probes {
		owners[probeConfig.Sck] = fmt.Sprintf("probe %s sck", probeConfig.ID)
		owners[probeConfig.Cs] = fmt.Sprintf("probe %s cs", probeConfig.ID)
		owners[probeConfig.So] = fmt.Sprintf("probe %s so", probeConfig.ID)
	}
	owners[config.Buttons.Menu] = "menu button"
	owners[config.Buttons.Increase] = "increase button"
	owners[config.Buttons.Decrease] = "decrease button"
	owners[config.Switch.Pin] = "run switch"
	owners[config.Relays.Heater] = "heater relay"
	owners[config.Relays.Fan] = "fan relay"
	return owners
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
