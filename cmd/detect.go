package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/fanduty/fanduty/internal/hwmon"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects analog inputs, pwm outputs and leds and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		controllers := hwmon.GetChips()

		for _, controller := range controllers {
			if len(controller.Name) <= 0 {
				continue
			}

			ui.Printfln("> %s", controller.Name)

			var inputRows [][]string
			for _, input := range controller.Inputs {
				_, file := filepath.Split(input.Input)
				maxText := "N/A"
				if input.Max >= 0 {
					maxText = strconv.Itoa(int(input.Max))
				}
				inputRows = append(inputRows, []string{
					"", strconv.Itoa(input.Index), fmt.Sprintf("%s (%s)", input.Label, file), strconv.Itoa(int(input.Value)), maxText,
				})
			}

			var outputRows [][]string
			for _, output := range controller.Outputs {
				valueText := "N/A"
				if output.Value >= 0 {
					valueText = strconv.Itoa(output.Value)
				}
				_, file := filepath.Split(output.Path)
				outputRows = append(outputRows, []string{
					"", strconv.Itoa(output.Index), fmt.Sprintf("%s (%s)", output.Label, file), valueText,
				})
			}

			printTables(
				table.Table{Headers: []string{"Inputs ", "Index", "Label", "mV", "Max"}, Rows: inputRows},
				table.Table{Headers: []string{"Outputs", "Index", "Label", "PWM"}, Rows: outputRows},
			)
		}

		var chipRows [][]string
		for _, chip := range hwmon.FindPwmChips(hwmon.DefaultPwmClassPath) {
			chipRows = append(chipRows, []string{"", chip.Name, chip.Path, strconv.Itoa(chip.Channels)})
		}
		var ledRows [][]string
		for _, led := range hwmon.FindLeds(hwmon.DefaultLedClassPath) {
			ledRows = append(ledRows, []string{"", led.Name, led.Path, strconv.Itoa(led.MaxBrightness)})
		}
		if chipRows != nil || ledRows != nil {
			ui.Printfln("> sysfs")
			printTables(
				table.Table{Headers: []string{"PWM    ", "Chip", "Path", "Channels"}, Rows: chipRows},
				table.Table{Headers: []string{"LEDs   ", "Name", "Path", "Max"}, Rows: ledRows},
			)
		}
	},
}

func printTables(tables ...table.Table) {
	text, err := renderTables(tables...)
	if err != nil {
		ui.Fatal("Error printing table: %v", err)
	}
	ui.Printfln("%s", text)
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
