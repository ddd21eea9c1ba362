package util //nolint:revive // package name util hosts shared formatting helpers used across CLI output

import "time"

// FormatTTL formats a remaining lifetime for display. Returns "expired" for
// zero or negative durations, truncates to whole seconds for readability.
func FormatTTL(d time.Duration) string {
	switch {
	case d <= 0:
		return "expired"
	case d < time.Second:
		return d.String()
	default:
		return d.Truncate(time.Second).String()
	}
}
