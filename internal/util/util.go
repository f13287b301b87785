package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDistance formats meters into a human readable distance (e.g., "850 m", "3.20 km").
func FormatDistance(meters float64) string {
	if meters < 0 || math.IsNaN(meters) {
		meters = 0
	}

	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}

	return fmt.Sprintf("%.2f km", meters/1000)
}

// FormatPace formats the average time per kilometer (e.g., "12m30s/km"). It returns "-" when no distance was covered.
func FormatPace(duration time.Duration, meters float64) string {
	if meters <= 0 || duration <= 0 {
		return "-"
	}

	perKm := time.Duration(float64(duration) / (meters / 1000))

	return FormatDuration(perKm) + "/km"
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
