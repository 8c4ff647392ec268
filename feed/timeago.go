package feed

import (
	"fmt"
	"time"
)

// TimeAgo renders the elapsed time between t and now as the largest
// applicable unit, integer-truncated: 59s, 12m, 3h, 6d, 3w, 11mo, 2y.
// Months are 28-day blocks (4 weeks), years 365 days.
func TimeAgo(t, now time.Time) string {
	s := now.Sub(t).Seconds()
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", int(s))
	case s < 3600:
		return fmt.Sprintf("%dm", int(s/60))
	case s < 86400:
		return fmt.Sprintf("%dh", int(s/3600))
	case s < 604800:
		return fmt.Sprintf("%dd", int(s/86400))
	case s < 2419200:
		return fmt.Sprintf("%dw", int(s/604800))
	case s < 31536000:
		return fmt.Sprintf("%dmo", int(s/2419200))
	default:
		return fmt.Sprintf("%dy", int(s/31536000))
	}
}
