package cmd

import (
	"fmt"
	"strconv"

	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/format"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var dutyCmd = &cobra.Command{
	Use:   "duty <sample>",
	Short: "Print the duty cycle, pwm state and display text for a raw sample",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid sample %q: %w", args[0], err)
		}

		configuration.ReadOptionalConfigFile()
		rows, err := dutyRows(configuration.CurrentConfig, uint32(sample))
		if err != nil {
			return err
		}
		printTables(table.Table{Headers: []string{"", ""}, Rows: rows})
		return nil
	},
}

func dutyRows(config configuration.Configuration, sample uint32) ([][]string, error) {
	mapper, err := duty.NewMapper(config.Analog.FullScale, config.Duty.Thresholds())
	if err != nil {
		return nil, err
	}
	driver, err := pwm.NewDriver(pwm.NewRegister(), config.Pwm.Max)
	if err != nil {
		return nil, err
	}

	percent := mapper.Map(sample)
	state := driver.StateFor(percent)
	return [][]string{
		{"Sample", strconv.FormatUint(uint64(sample), 10)},
		{"Raw", fmt.Sprintf("%d%%", mapper.Raw(sample))},
		{"Duty", fmt.Sprintf("%d%%", percent)},
		{"Compare", strconv.FormatUint(uint64(state.Compare), 10)},
		{"Mode", state.Mode.String()},
		{"Display", fmt.Sprintf("%q", format.Duty(uint8(percent)).String())},
	}, nil
}

func init() {
	rootCmd.AddCommand(dutyCmd)
}
