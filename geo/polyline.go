package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

// Polyline is an ordered sequence of points describing a route or sub-path.
type Polyline []GeoPoint

// Length returns the summed haversine length of the polyline in meters.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += Distance(pl[i-1], pl[i])
	}
	return total
}

// Valid reports whether every point of the polyline is valid.
func (pl Polyline) Valid() bool {
	for _, p := range pl {
		if !p.Valid() {
			return false
		}
	}
	return true
}

// Last returns the final point and false when the polyline is empty.
func (pl Polyline) Last() (GeoPoint, bool) {
	if len(pl) == 0 {
		return GeoPoint{}, false
	}
	return pl[len(pl)-1], true
}

// Clone returns a copy that shares no backing array with pl.
func (pl Polyline) Clone() Polyline {
	if pl == nil {
		return nil
	}
	out := make(Polyline, len(pl))
	copy(out, pl)
	return out
}

// ToOrb converts the polyline to an orb.LineString.
func (pl Polyline) ToOrb() orb.LineString {
	ls := make(orb.LineString, len(pl))
	for i, p := range pl {
		ls[i] = p.ToOrb()
	}
	return ls
}

// PolylineFromOrb converts an orb.LineString to a Polyline.
func PolylineFromOrb(ls orb.LineString) Polyline {
	pl := make(Polyline, len(ls))
	for i, p := range ls {
		pl[i] = FromOrb(p)
	}
	return pl
}

// PolylineFromPairs builds a polyline from [lat, lng] pairs.
func PolylineFromPairs(pairs [][]float64) (Polyline, error) {
	pl := make(Polyline, 0, len(pairs))
	for i, c := range pairs {
		if len(c) < 2 {
			return nil, fmt.Errorf("coordinate %d has %d components", i, len(c))
		}
		pl = append(pl, GeoPoint{Latitude: c[0], Longitude: c[1]})
	}
	return pl, nil
}

// Pairs returns the polyline as [lat, lng] pairs.
func (pl Polyline) Pairs() [][]float64 {
	out := make([][]float64, len(pl))
	for i, p := range pl {
		out[i] = []float64{p.Latitude, p.Longitude}
	}
	return out
}

// DecodePolyline decodes an encoded polyline string at 1e5 precision.
func DecodePolyline(s string) (Polyline, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	return PolylineFromPairs(coords)
}

// EncodePolyline encodes the polyline at 1e5 precision.
func EncodePolyline(pl Polyline) string {
	return string(polyline.EncodeCoords(pl.Pairs()))
}
