package pwm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fanduty/fanduty/internal"
	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <duty>",
	Short: "Apply the given duty cycle ([0..100]) to the configured pwm output once",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		percent, err := parsePercent(args[0])
		if err != nil {
			return err
		}

		configuration.ReadConfigFile()

		driver, err := internal.NewPwmDriver(configuration.CurrentConfig.Pwm)
		if err != nil {
			return err
		}
		state, err := driver.Apply(percent)
		if err != nil {
			return err
		}
		ui.Success("Applied %d%% (compare: %d, mode: %s)", percent, state.Compare, state.Mode)

		if err := confirm(driver, state); err != nil {
			ui.Warning("%v", err)
		}
		return nil
	},
}

var ErrPwmMismatch = errors.New("pwm output does not hold the applied state")

// confirm reads the output back and compares it to the applied state.
// Outputs that cannot be read back are accepted as is.
func confirm(driver *pwm.Driver, applied pwm.State) error {
	current, err := driver.ReadBack()
	if errors.Is(err, pwm.ErrNotReadable) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to read back pwm output: %w", err)
	}
	if current != applied {
		return fmt.Errorf("%w: compare %d, mode %s", ErrPwmMismatch, current.Compare, current.Mode)
	}
	return nil
}

func parsePercent(text string) (duty.Percent, error) {
	value, err := strconv.ParseUint(strings.TrimSuffix(text, "%"), 10, 8)
	if err != nil || value > uint64(duty.Full) {
		return 0, fmt.Errorf("invalid duty cycle %q, must be in [%d..%d]", text, duty.Off, duty.Full)
	}
	return duty.Percent(value), nil
}

func init() {
	Command.AddCommand(setCmd)
}
