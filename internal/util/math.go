package util

import (
	"golang.org/x/exp/constraints"
)

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// ScaleUint maps value from [0, from] onto [0, to], truncating.
// from must not be 0.
func ScaleUint(value uint32, from uint32, to uint32) uint32 {
	return uint32(uint64(value) * uint64(to) / uint64(from))
}
