package history

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/opensmoker/smokerd/cmd/global"
	"github.com/opensmoker/smokerd/internal/configuration"
	"github.com/opensmoker/smokerd/internal/persistence"
	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
	"github.com/opensmoker/smokerd/internal/util"
)

var (
	series string
	since  time.Duration
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print recorded temperatures to console",
	Long:  `Plots one recorded series from the telemetry history database`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		snapshots, err := pers.LoadSnapshotsSince(time.Now().Add(-since))
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			ui.Printfln("No history recorded in the last %s", since)
			return nil
		}

		values := make([]float64, 0, len(snapshots))
		for _, snap := range snapshots {
			value, err := seriesValue(snap, series)
			if err != nil {
				return err
			}
			values = append(values, value)
		}

		// print table
		first := snapshots[0]
		last := snapshots[len(snapshots)-1]
		tab := table.Table{
			Headers: []string{"Series", "Samples", "From", "To", "Min", "Max", "Avg"},
			Rows: [][]string{
				{
					series,
					strconv.Itoa(len(values)),
					first.Time.Local().Format("2006-01-02 15:04:05"),
					last.Time.Local().Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%.0f", util.Min(values)),
					fmt.Sprintf("%.0f", util.Max(values)),
					fmt.Sprintf("%.1f", util.Avg(values)),
				},
			},
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

		caption := fmt.Sprintf("%s (°F) / time", series)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)

		return nil
	},
}

func seriesValue(snap status.Snapshot, series string) (float64, error) {
	switch series {
	case configuration.ProbeAirTop:
		return float64(snap.AirTop), nil
	case configuration.ProbeAirBottom:
		return float64(snap.AirBottom), nil
	case configuration.ProbeMeat1:
		return float64(snap.Meat1), nil
	case "air_target":
		return float64(snap.AirTarget), nil
	case "meat_1_target":
		return float64(snap.Meat1Target), nil
	default:
		return 0, fmt.Errorf(
			"unknown series: %s, options: %s, %s, %s, air_target, meat_1_target",
			series, configuration.ProbeAirTop, configuration.ProbeAirBottom, configuration.ProbeMeat1)
	}
}

func init() {
	graphCmd.Flags().StringVarP(
		&series,
		"series", "s",
		configuration.ProbeAirTop,
		"Recorded series to plot",
	)
	graphCmd.Flags().DurationVarP(
		&since,
		"since", "",
		time.Hour,
		"How far back to plot",
	)
	Command.AddCommand(graphCmd)
}
