package internal

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fanduty/fanduty/internal/analog"
	"github.com/fanduty/fanduty/internal/configuration"
	"github.com/fanduty/fanduty/internal/controller"
	"github.com/fanduty/fanduty/internal/indicator"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createConfig(t *testing.T, sample string) configuration.Configuration {
	dir := t.TempDir()
	adc := filepath.Join(dir, "adc")
	require.NoError(t, os.WriteFile(adc, []byte(sample), 0o644))

	return configuration.Configuration{
		TickPeriod:      100 * time.Millisecond,
		HeartbeatPeriod: time.Second,
		Analog: configuration.AnalogConfig{
			FullScale:  1023,
			WindowSize: 10,
			File:       &configuration.FileAnalogConfig{Path: adc},
		},
		Duty: configuration.DutyConfig{DeadBand: 20, Ceiling: 95},
		Pwm: configuration.PwmConfig{
			Max:          255,
			ShutdownDuty: 100,
			File:         &configuration.FilePwmConfig{Path: filepath.Join(dir, "pwm")},
		},
		Display: configuration.DisplayConfig{
			Enabled:     true,
			Terminal:    false,
			Width:       128,
			Height:      64,
			Label:       "Fan Speed:",
			LabelOrigin: configuration.PointConfig{},
			Region:      configuration.RegionConfig{X: 0, Y: 16, Width: 50, Height: 20},
		},
	}
}

func TestCreateLoop_DrivesFilePwm(t *testing.T) {
	// GIVEN
	config := createConfig(t, "512\n")
	loop, closers, err := CreateLoop(config)
	require.NoError(t, err)
	defer closeAll(closers)

	// WHEN
	require.NoError(t, loop.Init())
	it := loop.Step()

	// THEN
	assert.NoError(t, it.InputErr)
	assert.NoError(t, it.DisplayErr)
	assert.NoError(t, it.PwmErr)
	compare, err := util.ReadIntFromFile(config.Pwm.File.Path)
	require.NoError(t, err)
	assert.Equal(t, 127, compare)
	enabled, err := util.ReadIntFromFile(config.Pwm.File.Path + "_enable")
	require.NoError(t, err)
	assert.Equal(t, 1, enabled)
}

func TestCreateLoop_InvalidHeartbeat(t *testing.T) {
	// GIVEN
	config := createConfig(t, "0")
	config.HeartbeatPeriod = 150 * time.Millisecond

	// WHEN
	_, _, err := CreateLoop(config)

	// THEN
	assert.Error(t, err)
}

func TestCreateLoop_FailureKeepsOpenedClosers(t *testing.T) {
	// GIVEN
	config := createConfig(t, "512\n")
	config.Indicator.Sysfs = &configuration.SysfsIndicatorConfig{Path: filepath.Join(t.TempDir(), "missing", "led0")}

	// WHEN
	loop, closers, err := CreateLoop(config)

	// THEN
	var initErr *PeripheralInitError
	assert.ErrorAs(t, err, &initErr)
	assert.Equal(t, "indicator", initErr.Peripheral)
	assert.Nil(t, loop)
	// analog input and display
	assert.Len(t, closers, 2)
}

type recordingCloser struct {
	closed int
	err    error
}

func (c *recordingCloser) Close() error {
	c.closed++
	return c.err
}

func TestCloseAll_ContinuesAfterError(t *testing.T) {
	// GIVEN
	first := &recordingCloser{err: errors.New("port busy")}
	second := &recordingCloser{}

	// WHEN
	closeAll([]io.Closer{first, second})

	// THEN
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, second.closed)
}

func TestNewAnalogInput_MissingConfig(t *testing.T) {
	// WHEN
	_, closer, err := NewAnalogInput(configuration.AnalogConfig{FullScale: 1023})

	// THEN
	var initErr *PeripheralInitError
	assert.ErrorAs(t, err, &initErr)
	assert.Equal(t, "analog input", initErr.Peripheral)
	assert.NotNil(t, closer)
}

func TestNewAnalogInput_Cmd(t *testing.T) {
	// WHEN
	input, _, err := NewAnalogInput(configuration.AnalogConfig{
		Cmd: &configuration.CmdAnalogConfig{Exec: "/usr/bin/cat", Args: []string{"/tmp/adc"}},
	})

	// THEN
	require.NoError(t, err)
	assert.IsType(t, &analog.CmdInput{}, input)
}

func TestNewPwmDriver_DefaultsToRegister(t *testing.T) {
	// WHEN
	driver, err := NewPwmDriver(configuration.PwmConfig{Max: 255})

	// THEN
	require.NoError(t, err)
	state, err := driver.Apply(100)
	assert.NoError(t, err)
	assert.Equal(t, pwm.State{Compare: 255, Mode: pwm.ModeActive}, state)
}

func TestNewPwmDriver_InvalidMax(t *testing.T) {
	// WHEN
	_, err := NewPwmDriver(configuration.PwmConfig{Max: 0})

	// THEN
	assert.ErrorIs(t, err, pwm.ErrInvalidMax)
}

func TestNewPresenter_Disabled(t *testing.T) {
	// WHEN
	presenter, closer, err := NewPresenter(configuration.DisplayConfig{Enabled: false})

	// THEN
	assert.NoError(t, err)
	assert.Nil(t, presenter)
	assert.NoError(t, closer.Close())
}

func TestNewPresenter_InvalidLayout(t *testing.T) {
	// GIVEN
	config := createConfig(t, "0").Display
	config.Height = 20

	// WHEN
	_, _, err := NewPresenter(config)

	// THEN
	var initErr *PeripheralInitError
	assert.ErrorAs(t, err, &initErr)
}

func TestNewIndicator_FallsBackToLog(t *testing.T) {
	// WHEN
	led, err := NewIndicator(configuration.IndicatorConfig{}, nil)

	// THEN
	require.NoError(t, err)
	assert.IsType(t, &indicator.Log{}, led)
	var _ controller.Indicator = led
}
