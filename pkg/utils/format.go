package utils

import (
	"fmt"
	"math"
)

// FormatCount abbreviates large counts for overlay badges.
// 1350000 renders as "1.4M", 15400 as "15.4K", 999 as "999".
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatTimecode renders a playhead position in seconds as m:ss.
// Negative and NaN inputs clamp to "0:00".
func FormatTimecode(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
