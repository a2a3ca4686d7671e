// Package timeutil provides utility functions for converting and formatting
// elapsed time values.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	millisInASecond = 1000
	millisInAMinute = 60 * millisInASecond
	millisInAnHour  = 60 * millisInAMinute
)

// FormatClock renders d as HH:MM:SS.mmm. Every component is truncated, never
// rounded. Negative values are treated as zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	ms := d.Milliseconds()

	hrs := ms / millisInAnHour
	mins := ms % millisInAnHour / millisInAMinute
	secs := ms % millisInAMinute / millisInASecond

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hrs, mins, secs, ms%millisInASecond)
}

// Frames converts d to a whole number of frames at fps, i.e.
// floor(seconds × fps). The computation is done on integer nanoseconds so the
// result is exact.
func Frames(d time.Duration, fps int) int64 {
	if d <= 0 || fps <= 0 {
		return 0
	}

	whole := int64(d / time.Second)
	frac := int64(d % time.Second)

	return whole*int64(fps) + frac*int64(fps)/int64(time.Second)
}

// FromSeconds converts a seconds value to a duration, rounding to the nearest
// nanosecond so that values printed with Seconds survive the round trip.
func FromSeconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}
