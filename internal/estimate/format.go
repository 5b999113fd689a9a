package estimate

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration for progress display: whole
// seconds below a minute, whole minutes below an hour, otherwise
// hours and minutes.
func FormatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}
