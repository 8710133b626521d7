package route

import (
	"fmt"
	"math"

	"github.com/theoremus-urban-solutions/runroute/geo"
)

// InvalidRouteError is returned when a polyline cannot be indexed.
type InvalidRouteError struct {
	Points int
	Reason string
}

func (e *InvalidRouteError) Error() string {
	return fmt.Sprintf("invalid route (%d points): %s", e.Points, e.Reason)
}

// Index is the precomputed geometry of a route.
// CumulativeDistance[0] is 0 and CumulativeDistance[i] = CumulativeDistance[i-1] + SegmentLengths[i-1].
type Index struct {
	Points             geo.Polyline
	SegmentLengths     []float64
	SegmentBearings    []float64
	CumulativeDistance []float64
	TotalDistance      float64
}

// Projection is the result of matching a point onto the route.
type Projection struct {
	SegmentIndex      int
	Point             geo.GeoPoint
	DistanceFromRoute float64
	HeadingDelta      float64
}

// Build computes segment lengths, bearings and cumulative distances in one pass.
func Build(pl geo.Polyline) (*Index, error) {
	if len(pl) < 2 {
		return nil, &InvalidRouteError{Points: len(pl), Reason: "at least 2 points required"}
	}
	for i, p := range pl {
		if !p.Valid() {
			return nil, &InvalidRouteError{Points: len(pl), Reason: fmt.Sprintf("invalid coordinate at index %d", i)}
		}
	}

	n := len(pl)
	idx := &Index{
		Points:             pl.Clone(),
		SegmentLengths:     make([]float64, n-1),
		SegmentBearings:    make([]float64, n-1),
		CumulativeDistance: make([]float64, n),
	}
	for i := 0; i < n-1; i++ {
		length := geo.Distance(pl[i], pl[i+1])
		idx.SegmentLengths[i] = length
		idx.SegmentBearings[i] = geo.Bearing(pl[i], pl[i+1])
		idx.CumulativeDistance[i+1] = idx.CumulativeDistance[i] + length
	}
	idx.TotalDistance = idx.CumulativeDistance[n-1]
	return idx, nil
}

// SegmentCount returns the number of segments (points - 1).
func (idx *Index) SegmentCount() int {
	return len(idx.SegmentLengths)
}

// Project matches p onto the segment minimizing distance + headingWeight*headingDelta.
// Ties go to the lowest segment index. The index is not modified.
func (idx *Index) Project(p geo.GeoPoint, heading float64, headingWeight float64) Projection {
	best := Projection{SegmentIndex: -1}
	bestCost := math.Inf(1)
	for i := 0; i < len(idx.SegmentLengths); i++ {
		a, b := idx.Points[i], idx.Points[i+1]
		proj := geo.ProjectPointOntoSegment(p, a, b)
		dist := geo.Distance(p, proj)
		delta := geo.HeadingDifference(heading, idx.SegmentBearings[i])
		cost := dist + headingWeight*delta
		if cost < bestCost {
			bestCost = cost
			best = Projection{
				SegmentIndex:      i,
				Point:             proj,
				DistanceFromRoute: dist,
				HeadingDelta:      delta,
			}
		}
	}
	return best
}

// DistanceAlong returns the distance covered along the route up to the projected point.
func (idx *Index) DistanceAlong(proj Projection) float64 {
	if proj.SegmentIndex < 0 || proj.SegmentIndex >= len(idx.SegmentLengths) {
		return 0
	}
	along := idx.CumulativeDistance[proj.SegmentIndex] + geo.Distance(idx.Points[proj.SegmentIndex], proj.Point)
	if along > idx.TotalDistance {
		return idx.TotalDistance
	}
	return along
}

// Start returns the first route point.
func (idx *Index) Start() geo.GeoPoint {
	return idx.Points[0]
}
