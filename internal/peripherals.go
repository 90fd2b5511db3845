package internal

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fanduty/fanduty/internal/analog"
	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/controller"
	"github.com/fanduty/fanduty/internal/display"
	"github.com/fanduty/fanduty/internal/display/terminal"
	"github.com/fanduty/fanduty/internal/hostpwm"
	"github.com/fanduty/fanduty/internal/indicator"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/ui"
)

// PeripheralInitError reports a peripheral that could not be brought up.
// The daemon cannot run without it.
type PeripheralInitError struct {
	Peripheral string
	Err        error
}

func (e *PeripheralInitError) Error() string {
	return fmt.Sprintf("unable to initialize %s: %v", e.Peripheral, e.Err)
}

func (e *PeripheralInitError) Unwrap() error {
	return e.Err
}

// NewAnalogInput creates the configured analog input. The returned closer
// is never nil.
func NewAnalogInput(config configuration.AnalogConfig) (controller.AnalogInput, io.Closer, error) {
	switch {
	case config.File != nil:
		input, err := analog.NewFileInput(config.File.Path)
		if err != nil {
			return nil, nopCloser{}, &PeripheralInitError{Peripheral: "analog input", Err: err}
		}
		return input, nopCloser{}, nil
	case config.Cmd != nil:
		return &analog.CmdInput{
			Exec:    config.Cmd.Exec,
			Args:    config.Cmd.Args,
			Timeout: config.Cmd.Timeout,
		}, nopCloser{}, nil
	case config.Serial != nil:
		input, err := analog.OpenSerialInput(config.Serial.Port, config.Serial.BaudRate, config.Serial.MaxAge)
		if err != nil {
			return nil, nopCloser{}, &PeripheralInitError{Peripheral: "analog input", Err: err}
		}
		return input, input, nil
	default:
		return nil, nopCloser{}, &PeripheralInitError{Peripheral: "analog input", Err: fmt.Errorf("no input configured")}
	}
}

// NewPwmDriver creates the configured pwm output wrapped in a driver.
// Without an output the duty cycle is only kept in an in-memory register.
func NewPwmDriver(config configuration.PwmConfig) (*pwm.Driver, error) {
	var output pwm.Output
	switch {
	case config.Sysfs != nil:
		chip := config.Sysfs.Chip
		if len(chip) <= 0 {
			chip = hostpwm.DefaultSysfsChipPath
		}
		period := config.Sysfs.Period
		if period <= 0 {
			period = hostpwm.DefaultSysfsPeriod
		}
		sysfs, err := hostpwm.OpenSysfsOutput(chip, config.Sysfs.Channel, period, config.Max)
		if err != nil {
			return nil, &PeripheralInitError{Peripheral: "pwm output", Err: err}
		}
		output = sysfs
	case config.File != nil:
		file, err := hostpwm.NewFileOutput(config.File.Path)
		if err != nil {
			return nil, &PeripheralInitError{Peripheral: "pwm output", Err: err}
		}
		output = file
	default:
		output = pwm.NewRegister()
	}

	driver, err := pwm.NewDriver(output, config.Max)
	if err != nil {
		return nil, &PeripheralInitError{Peripheral: "pwm output", Err: err}
	}
	return driver, nil
}

// NewPresenter creates the display presenter, or nil if the display is
// disabled. The returned closer is never nil.
func NewPresenter(config configuration.DisplayConfig) (controller.Presenter, io.Closer, error) {
	if !config.Enabled {
		return nil, nopCloser{}, nil
	}

	var sink display.Sink
	var closer io.Closer = nopCloser{}
	if config.Terminal {
		terminalSink, err := terminal.NewSink()
		if err != nil {
			return nil, closer, &PeripheralInitError{Peripheral: "display", Err: err}
		}
		sink = terminalSink
		closer = stopCloser(terminalSink.Stop)
	}

	fb, err := display.NewFramebuffer(config.Width, config.Height, sink)
	if err != nil {
		_ = closer.Close()
		return nil, nopCloser{}, &PeripheralInitError{Peripheral: "display", Err: err}
	}
	presenter, err := display.NewPresenter(display.NewCanvas(fb), config.Layout())
	if err != nil {
		_ = closer.Close()
		return nil, nopCloser{}, &PeripheralInitError{Peripheral: "display", Err: err}
	}
	return presenter, closer, nil
}

// NewIndicator creates the heartbeat indicator. Without a configured LED
// the heartbeat is logged.
func NewIndicator(config configuration.IndicatorConfig, logger *slog.Logger) (controller.Indicator, error) {
	if config.Sysfs != nil {
		led, err := indicator.OpenSysfsLed(config.Sysfs.Path)
		if err != nil {
			return nil, &PeripheralInitError{Peripheral: "indicator", Err: err}
		}
		return led, nil
	}
	ui.Debug("No indicator configured, logging heartbeat instead")
	return indicator.NewLog(logger), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type stopCloser func() error

func (s stopCloser) Close() error { return s() }
