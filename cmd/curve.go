package cmd

import (
	"fmt"
	"strconv"

	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const curvePoints = 100

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the duty cycle curve over the whole sample range",
	Run: func(cmd *cobra.Command, args []string) {
		configuration.ReadOptionalConfigFile()
		config := configuration.CurrentConfig

		mapper, err := duty.NewMapper(config.Analog.FullScale, config.Duty.Thresholds())
		if err != nil {
			ui.Fatal("Invalid duty configuration: %v", err)
		}

		printTables(table.Table{
			Headers: []string{"", ""},
			Rows: [][]string{
				{"Full scale", strconv.FormatUint(uint64(mapper.FullScale), 10)},
				{"Dead band", fmt.Sprintf("%d%% (sample >= %d)", mapper.Thresholds.DeadBand, mapper.MinSample(mapper.Thresholds.DeadBand))},
				{"Ceiling", fmt.Sprintf("%d%% (sample >= %d runs at %d%%)", mapper.Thresholds.Ceiling, mapper.MinSample(mapper.Thresholds.Ceiling+1), duty.Full)},
				{"PWM max", strconv.FormatUint(uint64(config.Pwm.Max), 10)},
			},
		})

		graph := asciigraph.Plot(curveValues(mapper, curvePoints),
			asciigraph.Height(15),
			asciigraph.Width(curvePoints),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(float64(duty.Full)),
			asciigraph.Caption("Duty % / Sample"),
		)
		ui.Printfln("%s", graph)
	},
}

// curveValues samples the mapping at n+1 evenly spaced points from 0 to full scale.
func curveValues(mapper duty.Mapper, n int) []float64 {
	values := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		sample := uint32(uint64(mapper.FullScale) * uint64(i) / uint64(n))
		values = append(values, float64(mapper.Map(sample)))
	}
	return values
}

func init() {
	rootCmd.AddCommand(curveCmd)
}
