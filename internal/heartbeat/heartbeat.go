// Package heartbeat paces a status indicator independently of the control
// loop tick.
package heartbeat

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidPeriod = errors.New("heartbeat period must be a positive multiple of the tick period")

// State is the indicator level plus the number of ticks since the last toggle.
type State struct {
	On      bool   `json:"on"`
	Elapsed uint32 `json:"elapsed"`
}

// Tick advances the state by one loop iteration. Once Elapsed reaches
// threshold the level flips and Elapsed starts over. It reports whether
// the level flipped. A threshold of 0 never toggles.
func (s *State) Tick(threshold uint32) bool {
	if threshold == 0 {
		return false
	}
	s.Elapsed++
	if s.Elapsed < threshold {
		return false
	}
	s.On = !s.On
	s.Elapsed = 0
	return true
}

// Threshold returns the number of ticks per heartbeat toggle.
func Threshold(heartbeatPeriod time.Duration, tickPeriod time.Duration) (uint32, error) {
	if tickPeriod <= 0 || heartbeatPeriod < tickPeriod || heartbeatPeriod%tickPeriod != 0 {
		return 0, fmt.Errorf("%w: heartbeat=%s, tick=%s", ErrInvalidPeriod, heartbeatPeriod, tickPeriod)
	}
	ratio := heartbeatPeriod / tickPeriod
	if ratio > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d ticks per toggle do not fit a counter", ErrInvalidPeriod, ratio)
	}
	return uint32(ratio), nil
}
