// Package seek moves media playback positions and picks which media element
// a seek applies to.
package seek

import (
	"math"
	"strconv"
)

// Direction is the direction of a seek.
type Direction int

const (
	// Back seeks toward the start.
	Back Direction = iota

	// Forward seeks toward the end.
	Forward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Back:
		return "back"
	case Forward:
		return "forward"
	default:
		return "unknown"
	}
}

// Delta returns the signed offset for seeking amount seconds in d.
func (d Direction) Delta(amount float64) float64 {
	amount = math.Abs(amount)
	if d == Back {
		return -amount
	}
	return amount
}

// Apply returns the position after moving current by delta seconds.
// The result never goes below 0; the upper bound is left to the media
// element, which clamps to its own duration.
func Apply(current, delta float64) float64 {
	return math.Max(0, current+delta)
}

// FormatLabel formats a seek amount for display, e.g. 5 -> "5", 2.5 -> "2.5".
// The label is always positive; direction is shown separately.
func FormatLabel(seconds float64) string {
	return strconv.FormatFloat(math.Abs(seconds), 'f', -1, 64)
}
