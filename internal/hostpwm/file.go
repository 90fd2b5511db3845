// Package hostpwm provides pwm.Output implementations backed by Linux
// sysfs attributes and plain files.
package hostpwm

import (
	"fmt"

	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/util"
)

const enableSuffix = "_enable"

// FileOutput writes the compare value to a file and the mode to the
// sibling "<path>_enable" file (1 = active, 0 = disabled), the same layout
// hwmon uses for pwmX / pwmX_enable.
type FileOutput struct {
	Path string
}

func NewFileOutput(path string) (*FileOutput, error) {
	expanded, err := util.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &FileOutput{Path: expanded}, nil
}

func (o *FileOutput) SetCompare(value uint32) error {
	return util.WriteIntToFileAtomic(int(value), o.Path)
}

func (o *FileOutput) SetMode(mode pwm.Mode) error {
	value := 0
	if mode == pwm.ModeActive {
		value = 1
	}
	return util.WriteIntToFileAtomic(value, o.Path+enableSuffix)
}

// GetCompare reads back the last written compare value.
func (o *FileOutput) GetCompare() (uint32, error) {
	value, err := util.ReadIntFromFile(o.Path)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid compare value %d in %s", value, o.Path)
	}
	return uint32(value), nil
}

// GetMode reads back the last written mode.
func (o *FileOutput) GetMode() (pwm.Mode, error) {
	value, err := util.ReadIntFromFile(o.Path + enableSuffix)
	if err != nil {
		return pwm.ModeDisabled, err
	}
	if value == 1 {
		return pwm.ModeActive, nil
	}
	return pwm.ModeDisabled, nil
}
