package configuration

import (
	"errors"
	"fmt"

	"github.com/fanduty/fanduty/internal/display"
	"github.com/fanduty/fanduty/internal/heartbeat"
	"github.com/fanduty/fanduty/internal/ui"
	"github.com/fanduty/fanduty/internal/util"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if err := validateTiming(config); err != nil {
		return err
	}
	if err := validateAnalog(config); err != nil {
		return err
	}
	if err := config.Duty.Thresholds().Validate(); err != nil {
		return err
	}
	if err := validatePwm(config); err != nil {
		return err
	}
	if err := validateDisplay(config); err != nil {
		return err
	}
	if err := validateIndicator(config); err != nil {
		return err
	}

	if config.Analog.Cmd != nil && path != "" {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %w", path, err)
		}
	}

	return nil
}

func validateTiming(config *Configuration) error {
	_, err := heartbeat.Threshold(config.HeartbeatPeriod, config.TickPeriod)
	return err
}

func validateAnalog(config *Configuration) error {
	analog := config.Analog
	if analog.FullScale == 0 {
		return errors.New("analog: fullScale must be > 0")
	}
	if analog.WindowSize <= 0 {
		return errors.New("analog: windowSize must be >= 1")
	}

	subConfigs := 0
	if analog.File != nil {
		subConfigs++
		if len(analog.File.Path) <= 0 {
			return errors.New("analog: file: missing path")
		}
	}
	if analog.Cmd != nil {
		subConfigs++
		if len(analog.Cmd.Exec) <= 0 {
			return errors.New("analog: cmd: missing exec")
		}
	}
	if analog.Serial != nil {
		subConfigs++
		if len(analog.Serial.Port) <= 0 {
			return errors.New("analog: serial: missing port")
		}
		if analog.Serial.BaudRate < 0 {
			return errors.New("analog: serial: baudRate must be >= 0")
		}
		if analog.Serial.MaxAge < 0 {
			return errors.New("analog: serial: maxAge must be >= 0")
		}
	}
	if subConfigs > 1 {
		return errors.New("analog: only one input type can be used, use one of: file | cmd | serial")
	}
	if subConfigs <= 0 {
		return errors.New("analog: sub-configuration for input is missing, use one of: file | cmd | serial")
	}
	return nil
}

func validatePwm(config *Configuration) error {
	pwm := config.Pwm
	if pwm.Max == 0 {
		return errors.New("pwm: max must be > 0")
	}
	if pwm.Sysfs != nil && pwm.File != nil {
		return errors.New("pwm: only one output type can be used, use one of: sysfs | file")
	}
	if pwm.Sysfs == nil && pwm.File == nil {
		ui.Warning("No pwm output configured, duty cycles will only be kept in memory")
	}
	if pwm.Sysfs != nil {
		if pwm.Sysfs.Channel < 0 {
			return errors.New("pwm: sysfs: channel must be >= 0")
		}
		if pwm.Sysfs.Period < 0 {
			return errors.New("pwm: sysfs: period must be >= 0")
		}
	}
	if pwm.File != nil && len(pwm.File.Path) <= 0 {
		return errors.New("pwm: file: missing path")
	}
	return nil
}

func validateDisplay(config *Configuration) error {
	if !config.Display.Enabled {
		return nil
	}
	layout := config.Display.Layout()
	if err := layout.Validate(config.Display.Width, config.Display.Height); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

func validateIndicator(config *Configuration) error {
	if config.Indicator.Sysfs != nil && len(config.Indicator.Sysfs.Path) <= 0 {
		return errors.New("indicator: sysfs: missing path")
	}
	return nil
}

// Layout converts the configured geometry into a display layout.
func (c DisplayConfig) Layout() display.Layout {
	return display.Layout{
		Label:       c.Label,
		LabelOrigin: display.Point{X: c.LabelOrigin.X, Y: c.LabelOrigin.Y},
		Region: display.Rect{
			Origin: display.Point{X: c.Region.X, Y: c.Region.Y},
			Width:  c.Region.Width,
			Height: c.Region.Height,
		},
	}
}
