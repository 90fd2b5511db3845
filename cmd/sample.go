package cmd

import (
	"fmt"

	"github.com/fanduty/fanduty/internal"
	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Read the configured analog input once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration.ReadConfigFile()
		config := configuration.CurrentConfig

		input, closer, err := internal.NewAnalogInput(config.Analog)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()

		value, err := input.Read()
		if err != nil {
			return fmt.Errorf("unable to read analog input: %w", err)
		}
		ui.Printfln("%d / %d", value, config.Analog.FullScale)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
