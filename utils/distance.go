package utils

import (
	"fmt"
	"math"
)

// Kilometers formats meters as kilometers with two decimals, the precision runs
// are recorded with.
func Kilometers(meters float64) string {
	return fmt.Sprintf("%.2f", meters/1000)
}

// PresentableDistance formats a distance for guidance display: whole meters
// below one kilometer, tenths of a kilometer above.
func PresentableDistance(meters float64) string {
	if meters < 0 || math.IsNaN(meters) {
		meters = 0
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// Progress formats a route progress percentage.
func Progress(percent float64) string {
	return fmt.Sprintf("%d%%", int(math.Floor(clamp(percent, 0, 100))))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
