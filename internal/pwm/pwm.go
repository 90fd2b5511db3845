// Package pwm translates duty cycles into timer compare values and
// waveform modes and writes them to a PWM output.
package pwm

import (
	"errors"
	"fmt"

	"github.com/fanduty/fanduty/internal/duty"
)

// Mode is the waveform generation mode of a PWM channel.
type Mode int

const (
	// ModeDisabled forces the output off.
	ModeDisabled Mode = iota
	// ModeActive clears the output on compare match.
	ModeActive
)

// DefaultMax is the resolution of an 8-bit timer.
const DefaultMax uint32 = 255

var (
	ErrInvalidMax  = errors.New("pwm max must be greater than 0")
	ErrNotReadable = errors.New("pwm output cannot be read back")
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeActive:
		return "active"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "disabled":
		*m = ModeDisabled
	case "active":
		*m = ModeActive
	default:
		return fmt.Errorf("unknown pwm mode %q", text)
	}
	return nil
}

// Output is a single hardware timer channel.
type Output interface {
	SetCompare(value uint32) error
	SetMode(mode Mode) error
}

// Reader is implemented by outputs that can report the values they hold.
type Reader interface {
	GetCompare() (uint32, error)
	GetMode() (Mode, error)
}

// State is the register state written for a duty cycle.
type State struct {
	Compare uint32 `json:"compare"`
	Mode    Mode   `json:"mode"`
}

// Driver owns an Output and applies duty cycles to it.
type Driver struct {
	output Output
	max    uint32
}

func NewDriver(output Output, max uint32) (*Driver, error) {
	if max == 0 {
		return nil, ErrInvalidMax
	}
	return &Driver{
		output: output,
		max:    max,
	}, nil
}

func (d *Driver) Max() uint32 {
	return d.max
}

// StateFor computes the register state for the given duty cycle
// without touching the output.
func (d *Driver) StateFor(percent duty.Percent) State {
	if percent > duty.Full {
		percent = duty.Full
	}
	state := State{
		Compare: uint32(uint64(percent) * uint64(d.max) / uint64(duty.Full)),
		Mode:    ModeActive,
	}
	if percent == duty.Off {
		state.Mode = ModeDisabled
	}
	return state
}

// Apply writes compare value and mode for the given duty cycle. Both
// registers are written on every call, regardless of the previous state.
// A failed compare write does not prevent the mode write.
func (d *Driver) Apply(percent duty.Percent) (State, error) {
	state := d.StateFor(percent)

	var errs []error
	if err := d.output.SetCompare(state.Compare); err != nil {
		errs = append(errs, fmt.Errorf("set compare %d: %w", state.Compare, err))
	}
	if err := d.output.SetMode(state.Mode); err != nil {
		errs = append(errs, fmt.Errorf("set mode %s: %w", state.Mode, err))
	}
	return state, errors.Join(errs...)
}

// ReadBack returns the state the output currently holds. Outputs that do
// not implement Reader yield ErrNotReadable.
func (d *Driver) ReadBack() (State, error) {
	reader, ok := d.output.(Reader)
	if !ok {
		return State{}, ErrNotReadable
	}
	compare, err := reader.GetCompare()
	if err != nil {
		return State{}, fmt.Errorf("get compare: %w", err)
	}
	mode, err := reader.GetMode()
	if err != nil {
		return State{}, fmt.Errorf("get mode: %w", err)
	}
	return State{Compare: compare, Mode: mode}, nil
}
