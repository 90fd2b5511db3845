package config

import (
	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration, including defaults",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration.ReadOptionalConfigFile()

		text, err := marshalConfig(configuration.CurrentConfig)
		if err != nil {
			return err
		}
		ui.Printfln("%s", text)
		return nil
	},
}

func marshalConfig(config configuration.Configuration) (string, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	Command.AddCommand(showCmd)
}
