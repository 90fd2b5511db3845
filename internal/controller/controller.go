package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/heartbeat"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/util"
)

var (
	ErrMissingInput  = errors.New("no analog input configured")
	ErrMissingPwm    = errors.New("no pwm driver configured")
	ErrInvalidTick   = errors.New("tick period must be positive")
	ErrInvalidWindow = errors.New("sample window size must be positive")
)

// AnalogInput produces one raw sample per tick.
type AnalogInput interface {
	Read() (uint32, error)
}

// Presenter shows the duty cycle on a display.
type Presenter interface {
	DrawLabel() error
	Render(percent duty.Percent) error
}

// Indicator is the heartbeat output. Set must be idempotent.
type Indicator interface {
	Set(on bool) error
}

// Sleeper blocks for one tick.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type Config struct {
	Id                 string
	TickPeriod         time.Duration
	HeartbeatThreshold uint32
	// number of samples in the moving average reported with each snapshot
	WindowSize int
	// duty cycle applied once the loop is stopped
	ShutdownDuty duty.Percent
}

// Peripherals are the hardware handles owned by the loop for its whole
// lifetime. Presenter and Indicator are optional.
type Peripherals struct {
	Input     AnalogInput
	Pwm       *pwm.Driver
	Presenter Presenter
	Indicator Indicator
}

// Iteration is the outcome of a single Step.
type Iteration struct {
	Sample           uint32
	Duty             duty.Percent
	Pwm              pwm.State
	HeartbeatToggled bool
	HeartbeatOn      bool

	InputErr     error
	DisplayErr   error
	PwmErr       error
	IndicatorErr error
}

type Statistics struct {
	Iterations      uint64 `json:"iterations"`
	InputErrors     uint64 `json:"inputErrors"`
	DisplayErrors   uint64 `json:"displayErrors"`
	PwmErrors       uint64 `json:"pwmErrors"`
	IndicatorErrors uint64 `json:"indicatorErrors"`
}

// Loop samples the analog input, derives the duty cycle, shows it and
// drives the PWM output once per tick.
type Loop struct {
	config      Config
	mapper      duty.Mapper
	peripherals Peripherals
	sleeper     Sleeper
	logger      *slog.Logger

	heartbeat heartbeat.State
	// the last indicator write failed, the output may not match heartbeat.On
	indicatorStale bool
	lastSample     uint32
	hasSample      bool
	window         *rolling.PointPolicy
	statistics     Statistics
}

func NewLoop(config Config, mapper duty.Mapper, peripherals Peripherals, sleeper Sleeper, logger *slog.Logger) (*Loop, error) {
	if peripherals.Input == nil {
		return nil, ErrMissingInput
	}
	if peripherals.Pwm == nil {
		return nil, ErrMissingPwm
	}
	if config.TickPeriod <= 0 {
		return nil, ErrInvalidTick
	}
	if config.WindowSize <= 0 {
		return nil, ErrInvalidWindow
	}
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		config:      config,
		mapper:      mapper,
		peripherals: peripherals,
		sleeper:     sleeper,
		logger:      logger.With("controller", config.Id),
		window:      util.CreateRollingWindow(config.WindowSize),
	}, nil
}

// Init draws the static part of the screen. A failure here means the
// display is unusable and is reported to the caller as fatal.
func (l *Loop) Init() error {
	if l.peripherals.Presenter == nil {
		return nil
	}
	return l.peripherals.Presenter.DrawLabel()
}

// Run executes Step once per tick until ctx is cancelled. On cancellation
// the shutdown duty cycle is applied.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("Starting control loop", "tick", l.config.TickPeriod, "heartbeatThreshold", l.config.HeartbeatThreshold)
	for {
		l.Step()
		if err := l.sleeper.Sleep(ctx, l.config.TickPeriod); err != nil {
			l.shutdown()
			return nil
		}
	}
}

func (l *Loop) shutdown() {
	state, err := l.peripherals.Pwm.Apply(l.config.ShutdownDuty)
	if err != nil {
		l.logger.Error("Unable to apply shutdown duty, make sure the fan is running!", "duty", l.config.ShutdownDuty, "error", err)
		return
	}
	l.logger.Info("Control loop stopped", "duty", l.config.ShutdownDuty, "compare", state.Compare, "mode", state.Mode)
}

// Step runs one iteration: read, map, render, drive pwm, pace heartbeat.
// The rendered value and the pwm value always stem from the same sample.
// A display failure never prevents the pwm update.
func (l *Loop) Step() Iteration {
	var it Iteration

	it.Sample, it.InputErr = l.sample()
	it.Duty = l.mapper.Map(it.Sample)

	if l.peripherals.Presenter != nil {
		it.DisplayErr = l.peripherals.Presenter.Render(it.Duty)
		if it.DisplayErr != nil {
			l.statistics.DisplayErrors++
			l.logger.Warn("Skipping display frame", "duty", it.Duty, "error", it.DisplayErr)
		}
	}

	it.Pwm, it.PwmErr = l.peripherals.Pwm.Apply(it.Duty)
	if it.PwmErr != nil {
		l.statistics.PwmErrors++
		l.logger.Error("Unable to apply duty", "duty", it.Duty, "error", it.PwmErr)
	}

	it.HeartbeatToggled = l.heartbeat.Tick(l.config.HeartbeatThreshold)
	if (it.HeartbeatToggled || l.indicatorStale) && l.peripherals.Indicator != nil {
		it.IndicatorErr = l.peripherals.Indicator.Set(l.heartbeat.On)
		l.indicatorStale = it.IndicatorErr != nil
		if it.IndicatorErr != nil {
			l.statistics.IndicatorErrors++
			l.logger.Warn("Unable to set indicator", "on", l.heartbeat.On, "error", it.IndicatorErr)
		}
	}
	it.HeartbeatOn = l.heartbeat.On

	l.statistics.Iterations++
	l.publish(it)
	return it
}

// sample reads the analog input. On failure the last good sample is
// reused, or full scale if there is none yet, so the fan fails towards
// full speed.
func (l *Loop) sample() (uint32, error) {
	value, err := l.peripherals.Input.Read()
	if err != nil {
		l.statistics.InputErrors++
		fallback := l.mapper.FullScale
		if l.hasSample {
			fallback = l.lastSample
		}
		l.logger.Warn("Unable to read analog input", "fallback", fallback, "error", err)
		return fallback, err
	}

	value = util.Coerce(value, 0, l.mapper.FullScale)
	l.lastSample = value
	l.hasSample = true
	l.window.Append(float64(value))
	return value, nil
}

func (l *Loop) Statistics() Statistics {
	return l.statistics
}

func (l *Loop) Heartbeat() heartbeat.State {
	return l.heartbeat
}

func (l *Loop) Id() string {
	return l.config.Id
}

// TimerSleeper waits for the full duration unless ctx is cancelled first.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
