package route

import (
	"github.com/theoremus-urban-solutions/runroute/geo"
)

// Direction tells whether a traversal matches the first traversal of its segment.
type Direction string

const (
	Forward Direction = "forward"
	Reverse Direction = "reverse"
)

// SegmentVisit describes how often the undirected segment at Index is traversed
// over the whole route, and in which orientation this traversal runs.
type SegmentVisit struct {
	Index     int       `json:"index"`
	Count     int       `json:"count"`
	Direction Direction `json:"direction"`
}

// Repeated reports whether the segment is run more than once.
func (v SegmentVisit) Repeated() bool { return v.Count > 1 }

type segmentKey struct {
	a, b geo.GeoPoint
}

// PathVisits counts repeated segments of an out-and-back or overlapping route.
func PathVisits(pl geo.Polyline) []SegmentVisit {
	if len(pl) < 2 {
		return nil
	}
	counts := map[segmentKey]int{}
	first := map[segmentKey]segmentKey{}
	keys := make([]segmentKey, len(pl)-1)
	for i := 1; i < len(pl); i++ {
		directed := segmentKey{pl[i-1], pl[i]}
		undirected := directed
		if _, seen := first[undirected]; !seen {
			reversed := segmentKey{pl[i], pl[i-1]}
			if _, seenReversed := first[reversed]; seenReversed {
				undirected = reversed
			} else {
				first[undirected] = directed
			}
		}
		counts[undirected]++
		keys[i-1] = undirected
	}

	visits := make([]SegmentVisit, len(keys))
	for i, k := range keys {
		dir := Forward
		if first[k] != (segmentKey{pl[i], pl[i+1]}) {
			dir = Reverse
		}
		visits[i] = SegmentVisit{Index: i, Count: counts[k], Direction: dir}
	}
	return visits
}

// Arrow is a direction marker placed along the route.
type Arrow struct {
	Point     geo.GeoPoint `json:"point"`
	Bearing   float64      `json:"bearing"`
	Repeated  bool         `json:"repeated"`
	Direction Direction    `json:"direction"`
}

// Arrows places a direction marker every spacing meters along the route.
func (idx *Index) Arrows(spacing float64) []Arrow {
	if spacing <= 0 {
		return nil
	}
	visits := PathVisits(idx.Points)
	var arrows []Arrow
	next := spacing
	for i, length := range idx.SegmentLengths {
		start := idx.CumulativeDistance[i]
		end := start + length
		for length > 0 && next <= end {
			f := (next - start) / length
			a, b := idx.Points[i], idx.Points[i+1]
			arrows = append(arrows, Arrow{
				Point: geo.GeoPoint{
					Latitude:  a.Latitude + f*(b.Latitude-a.Latitude),
					Longitude: a.Longitude + f*(b.Longitude-a.Longitude),
				},
				Bearing:   idx.SegmentBearings[i],
				Repeated:  visits[i].Repeated(),
				Direction: visits[i].Direction,
			})
			next += spacing
		}
	}
	return arrows
}
