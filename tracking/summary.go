package tracking

import (
	"time"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/runroute/geo"
)

// RunSummary is handed to the run persistence collaborator when a run completes.
type RunSummary struct {
	RunID    string        `json:"runId"`
	Distance float64       `json:"distance"`
	Elapsed  time.Duration `json:"elapsed"`
	// Pace is the time per kilometer; zero when no distance was covered.
	Pace time.Duration `json:"pace"`
	Date time.Time     `json:"date"`
	Path geo.Polyline  `json:"path"`
}

// Summary builds the final metrics of the run so far.
func (t *Tracker) Summary() RunSummary {
	end := t.finishedAt
	if end.IsZero() {
		end = t.now()
	}
	var elapsed time.Duration
	if !t.startedAt.IsZero() && end.After(t.startedAt) {
		elapsed = end.Sub(t.startedAt)
	}
	return RunSummary{
		RunID:    uuid.NewString(),
		Distance: t.state.DistanceTraveledMeters,
		Elapsed:  elapsed,
		Pace:     PacePerKM(elapsed, t.state.DistanceTraveledMeters),
		Date:     t.startedAt,
		Path:     t.state.CompletedPath.Clone(),
	}
}

// PacePerKM returns the time needed per kilometer at the given average.
func PacePerKM(elapsed time.Duration, meters float64) time.Duration {
	if meters <= 0 {
		return 0
	}
	return time.Duration(float64(elapsed) / (meters / 1000))
}
