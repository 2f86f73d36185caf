package utils

import (
	"fmt"
	"math"
)

// FormatTime renders a duration in seconds the way timing sheets do:
// "1h01m01.234" above an hour, "1m05.500" above a minute, "5.250" below.
func FormatTime(seconds float64) string {
	// round to the millisecond first so 119.9996 becomes 2m00.000,
	// not 1m60.000
	seconds = math.Round(seconds*1000) / 1000
	m := math.Floor(seconds / 60)
	s := seconds - m*60
	switch {
	case seconds >= 3600:
		h := math.Floor(m / 60)
		m -= h * 60
		return fmt.Sprintf("%.0fh%02.0fm%06.3f", h, m, s)
	case m > 0:
		return fmt.Sprintf("%.0fm%06.3f", m, s)
	default:
		return fmt.Sprintf("%.3f", s)
	}
}
