package util

import "github.com/asecurityteam/rolling"

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowAvg returns the average of all points in the window,
// or 0 if nothing has been appended yet.
func GetWindowAvg(window *rolling.PointPolicy) float64 {
	if window.Reduce(rolling.Count) <= 0 {
		return 0
	}
	return window.Reduce(rolling.Avg)
}

func GetWindowMax(window *rolling.PointPolicy) float64 {
	if window.Reduce(rolling.Count) <= 0 {
		return 0
	}
	return window.Reduce(rolling.Max)
}
