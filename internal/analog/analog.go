// Package analog provides raw analog sample sources available on a Linux
// host: sysfs/iio attribute files, external commands and serial ADC bridges.
package analog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNegativeSample = errors.New("analog sample must not be negative")
	ErrNoSample       = errors.New("no analog sample received yet")
)

func parseSample(text string) (uint32, error) {
	text = strings.TrimSpace(text)
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid analog sample %q: %w", text, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeSample, value)
	}
	if value > int64(^uint32(0)) {
		value = int64(^uint32(0))
	}
	return uint32(value), nil
}
