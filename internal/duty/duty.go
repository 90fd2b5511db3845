// Package duty maps raw analog samples onto safe fan duty cycle percentages.
package duty

import (
	"errors"
	"fmt"
)

// Percent is a duty cycle in percent. After mapping it is always 0, Full,
// or within [DeadBand, Ceiling].
type Percent uint8

const (
	Off  Percent = 0
	Full Percent = 100
)

var (
	ErrInvalidFullScale  = errors.New("full scale must be greater than 0")
	ErrInvalidThresholds = errors.New("thresholds must satisfy 0 < deadBand <= ceiling < 100")
)

// Thresholds describes the three-band clamp policy.
type Thresholds struct {
	// raw percentages below DeadBand stop the fan
	DeadBand Percent `json:"deadBand"`
	// raw percentages above Ceiling run the fan at Full
	Ceiling Percent `json:"ceiling"`
}

var DefaultThresholds = Thresholds{
	DeadBand: 20,
	Ceiling:  95,
}

func (t Thresholds) Validate() error {
	if t.DeadBand == 0 || t.DeadBand > t.Ceiling || t.Ceiling >= Full {
		return fmt.Errorf("%w: got deadBand=%d, ceiling=%d", ErrInvalidThresholds, t.DeadBand, t.Ceiling)
	}
	return nil
}

// Mapper converts samples in [0, FullScale] into a Percent. It holds no state.
type Mapper struct {
	FullScale  uint32
	Thresholds Thresholds
}

func NewMapper(fullScale uint32, thresholds Thresholds) (Mapper, error) {
	if fullScale == 0 {
		return Mapper{}, ErrInvalidFullScale
	}
	if err := thresholds.Validate(); err != nil {
		return Mapper{}, err
	}
	return Mapper{
		FullScale:  fullScale,
		Thresholds: thresholds,
	}, nil
}

// Raw returns floor(sample * 100 / FullScale). Samples above FullScale are
// treated as FullScale.
func (m Mapper) Raw(sample uint32) Percent {
	if sample > m.FullScale {
		sample = m.FullScale
	}
	return Percent(uint64(sample) * uint64(Full) / uint64(m.FullScale))
}

// Map returns the safe duty cycle for the given sample.
func (m Mapper) Map(sample uint32) Percent {
	return m.Thresholds.Clamp(m.Raw(sample))
}

// Clamp applies the dead band and ceiling to a raw percentage.
func (t Thresholds) Clamp(raw Percent) Percent {
	switch {
	case raw < t.DeadBand:
		return Off
	case raw > t.Ceiling:
		return Full
	default:
		return raw
	}
}

// MinSample returns the smallest sample whose raw percentage is at least p.
func (m Mapper) MinSample(p Percent) uint32 {
	product := uint64(p) * uint64(m.FullScale)
	return uint32((product + uint64(Full) - 1) / uint64(Full))
}
