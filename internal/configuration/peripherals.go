package configuration

import (
	"time"

	"github.com/fanduty/fanduty/internal/duty"
)

type AnalogConfig struct {
	// raw value corresponding to 100%
	FullScale  uint32 `json:"fullScale" yaml:"fullScale"`
	WindowSize int    `json:"windowSize" yaml:"windowSize"`

	File   *FileAnalogConfig   `json:"file,omitempty" yaml:"file,omitempty"`
	Cmd    *CmdAnalogConfig    `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Serial *SerialAnalogConfig `json:"serial,omitempty" yaml:"serial,omitempty"`
}

type FileAnalogConfig struct {
	Path string `json:"path" yaml:"path"`
}

type CmdAnalogConfig struct {
	Exec    string        `json:"exec" yaml:"exec"`
	Args    []string      `json:"args" yaml:"args"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

type SerialAnalogConfig struct {
	Port     string `json:"port" yaml:"port"`
	BaudRate int    `json:"baudRate" yaml:"baudRate"`
	// the last sample is rejected when no new line arrived for this long
	MaxAge time.Duration `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
}

type DutyConfig struct {
	DeadBand duty.Percent `json:"deadBand" yaml:"deadBand"`
	Ceiling  duty.Percent `json:"ceiling" yaml:"ceiling"`
}

func (c DutyConfig) Thresholds() duty.Thresholds {
	return duty.Thresholds{DeadBand: c.DeadBand, Ceiling: c.Ceiling}
}

type PwmConfig struct {
	Max          uint32       `json:"max" yaml:"max"`
	ShutdownDuty duty.Percent `json:"shutdownDuty" yaml:"shutdownDuty"`

	Sysfs *SysfsPwmConfig `json:"sysfs,omitempty" yaml:"sysfs,omitempty"`
	File  *FilePwmConfig  `json:"file,omitempty" yaml:"file,omitempty"`
}

type SysfsPwmConfig struct {
	Chip    string        `json:"chip" yaml:"chip"`
	Channel int           `json:"channel" yaml:"channel"`
	Period  time.Duration `json:"period" yaml:"period"`
}

type FilePwmConfig struct {
	Path string `json:"path" yaml:"path"`
}

type DisplayConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// render frames to the terminal
	Terminal bool `json:"terminal" yaml:"terminal"`

	Width       int16        `json:"width" yaml:"width"`
	Height      int16        `json:"height" yaml:"height"`
	Label       string       `json:"label" yaml:"label"`
	LabelOrigin PointConfig  `json:"labelOrigin" yaml:"labelOrigin"`
	Region      RegionConfig `json:"region" yaml:"region"`
}

type PointConfig struct {
	X int16 `json:"x" yaml:"x"`
	Y int16 `json:"y" yaml:"y"`
}

type RegionConfig struct {
	X      int16 `json:"x" yaml:"x"`
	Y      int16 `json:"y" yaml:"y"`
	Width  int16 `json:"width" yaml:"width"`
	Height int16 `json:"height" yaml:"height"`
}

type IndicatorConfig struct {
	Sysfs *SysfsIndicatorConfig `json:"sysfs,omitempty" yaml:"sysfs,omitempty"`
}

type SysfsIndicatorConfig struct {
	// path of the led class directory, e.g. /sys/class/leds/led0
	Path string `json:"path" yaml:"path"`
}
