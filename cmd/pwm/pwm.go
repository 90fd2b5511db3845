package pwm

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "pwm",
	Short:            "PWM output related commands",
	Long:             ``,
	TraverseChildren: true,
}
