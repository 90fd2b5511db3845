package hostpwm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/util"
)

const (
	DefaultSysfsChipPath = "/sys/class/pwm/pwmchip0"
	// 25 kHz, the frequency of 4-pin PC fans
	DefaultSysfsPeriod = 40 * time.Microsecond
)

var ErrInvalidPeriod = errors.New("pwm period must be at least 1ns")

// SysfsOutput drives a channel of the Linux PWM class
// (/sys/class/pwm/pwmchipN/pwmM). The compare value is scaled onto the
// channel period and written as duty_cycle; the mode maps to enable.
type SysfsOutput struct {
	channelPath string
	period      time.Duration
	max         uint32
}

// OpenSysfsOutput exports the channel if necessary and configures its period.
func OpenSysfsOutput(chipPath string, channel int, period time.Duration, max uint32) (*SysfsOutput, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if max == 0 {
		return nil, pwm.ErrInvalidMax
	}

	channelPath := filepath.Join(chipPath, "pwm"+strconv.Itoa(channel))
	if _, err := os.Stat(channelPath); os.IsNotExist(err) {
		err = util.WriteIntToFile(channel, filepath.Join(chipPath, "export"))
		if err != nil {
			return nil, fmt.Errorf("unable to export pwm channel %d of %s: %w", channel, chipPath, err)
		}
	}

	o := &SysfsOutput{
		channelPath: channelPath,
		period:      period,
		max:         max,
	}

	// duty_cycle must never exceed the period, so reset it before changing the period
	if err := o.write("duty_cycle", 0); err != nil {
		return nil, err
	}
	if err := o.write("period", period.Nanoseconds()); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *SysfsOutput) SetCompare(value uint32) error {
	if value > o.max {
		value = o.max
	}
	dutyCycle := uint64(value) * uint64(o.period.Nanoseconds()) / uint64(o.max)
	return o.write("duty_cycle", int64(dutyCycle))
}

func (o *SysfsOutput) SetMode(mode pwm.Mode) error {
	enable := int64(0)
	if mode == pwm.ModeActive {
		enable = 1
	}
	return o.write("enable", enable)
}

// GetCompare scales duty_cycle back onto [0..max], rounding to nearest.
func (o *SysfsOutput) GetCompare() (uint32, error) {
	dutyCycle, err := o.read("duty_cycle")
	if err != nil {
		return 0, err
	}
	period := uint64(o.period.Nanoseconds())
	return uint32((uint64(dutyCycle)*uint64(o.max) + period/2) / period), nil
}

func (o *SysfsOutput) GetMode() (pwm.Mode, error) {
	enable, err := o.read("enable")
	if err != nil {
		return pwm.ModeDisabled, err
	}
	if enable == 1 {
		return pwm.ModeActive, nil
	}
	return pwm.ModeDisabled, nil
}

func (o *SysfsOutput) read(attribute string) (int, error) {
	path := filepath.Join(o.channelPath, attribute)
	value, err := util.ReadIntFromFile(path)
	if err != nil {
		return 0, fmt.Errorf("unable to read %s: %w", path, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid value %d in %s", value, path)
	}
	return value, nil
}

func (o *SysfsOutput) write(attribute string, value int64) error {
	path := filepath.Join(o.channelPath, attribute)
	err := util.WriteIntToFile(int(value), path)
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}
