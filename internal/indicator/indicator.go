// Package indicator provides status outputs such as an LED.
package indicator

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fanduty/fanduty/internal/util"
)

// Memory is an indicator without any hardware behind it.
type Memory struct {
	On     bool
	Writes int
}

func (m *Memory) Set(on bool) error {
	m.On = on
	m.Writes++
	return nil
}

// Log reports every change to a logger. Used when no LED is configured.
type Log struct {
	Memory
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Set(on bool) error {
	_ = l.Memory.Set(on)
	l.logger.Debug("heartbeat", "on", on)
	return nil
}

// SysfsLed drives /sys/class/leds/<name>/brightness.
type SysfsLed struct {
	brightnessPath string
	maxBrightness  int
}

// OpenSysfsLed switches the LED off and returns it. ledPath is the LED
// directory, e.g. /sys/class/leds/led0.
func OpenSysfsLed(ledPath string) (*SysfsLed, error) {
	maxBrightness, err := util.ReadIntFromFile(filepath.Join(ledPath, "max_brightness"))
	if err != nil || maxBrightness <= 0 {
		maxBrightness = 1
	}
	led := &SysfsLed{
		brightnessPath: filepath.Join(ledPath, "brightness"),
		maxBrightness:  maxBrightness,
	}
	if err := util.WriteIntToFile(0, led.brightnessPath); err != nil {
		return nil, fmt.Errorf("unable to access led %s: %w", ledPath, err)
	}
	return led, nil
}

// Set writes the brightness for on or off. Writing the same state twice is
// harmless, so a failed write is repaired by the next call.
func (l *SysfsLed) Set(on bool) error {
	value := 0
	if on {
		value = l.maxBrightness
	}
	return util.WriteIntToFile(value, l.brightnessPath)
}
