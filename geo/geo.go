package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const (
	// KMPerDegreeLat is the length of one degree of latitude used for local offsets.
	KMPerDegreeLat = 111.32
)

// GeoPoint is a WGS84 coordinate in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point holds finite, in-range coordinates.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) || math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// ToOrb converts to an orb.Point (lon, lat order).
func (p GeoPoint) ToOrb() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// FromOrb converts an orb.Point (lon, lat order) to a GeoPoint.
func FromOrb(p orb.Point) GeoPoint {
	return GeoPoint{Latitude: p.Lat(), Longitude: p.Lon()}
}

// Distance returns the haversine great-circle distance between a and b in meters.
func Distance(a, b GeoPoint) float64 {
	return orbgeo.DistanceHaversine(a.ToOrb(), b.ToOrb())
}

// Bearing returns the initial bearing from a to b in degrees within [0, 360).
func Bearing(a, b GeoPoint) float64 {
	return normalize360(orbgeo.Bearing(a.ToOrb(), b.ToOrb()))
}

// BearingDelta returns the signed minimal difference b2-b1 in (-180, 180].
// Positive values turn right, negative values turn left.
func BearingDelta(b1, b2 float64) float64 {
	d := math.Mod(b2-b1, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// HeadingDifference returns the absolute minimal difference between two headings in [0, 180].
func HeadingDifference(h1, h2 float64) float64 {
	return math.Abs(BearingDelta(h1, h2))
}

// ProjectPointOntoSegment returns the point of segment a-b closest to p.
// The parametric position is clamped to [0,1]; a zero-length segment returns a.
// Longitudes are scaled by cos(latitude) so the projection is orthogonal on the ground.
func ProjectPointOntoSegment(p, a, b GeoPoint) GeoPoint {
	k := math.Cos(((a.Latitude + b.Latitude) / 2) * math.Pi / 180)
	vx := (b.Longitude - a.Longitude) * k
	vy := b.Latitude - a.Latitude
	denom := vx*vx + vy*vy
	if denom == 0 {
		return a
	}
	wx := (p.Longitude - a.Longitude) * k
	wy := p.Latitude - a.Latitude
	t := (wx*vx + wy*vy) / denom
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return GeoPoint{
		Latitude:  a.Latitude + t*(b.Latitude-a.Latitude),
		Longitude: a.Longitude + t*(b.Longitude-a.Longitude),
	}
}

// Midpoint returns the arithmetic midpoint of a and b in degree space.
func Midpoint(a, b GeoPoint) GeoPoint {
	return GeoPoint{
		Latitude:  (a.Latitude + b.Latitude) / 2,
		Longitude: (a.Longitude + b.Longitude) / 2,
	}
}

// OffsetMeters moves p by the given north and east displacements using a local
// flat-earth approximation. Accurate enough for offsets of a few kilometers.
func OffsetMeters(p GeoPoint, north, east float64) GeoPoint {
	latPerKM := 1 / KMPerDegreeLat
	lngPerKM := 1 / (KMPerDegreeLat * math.Cos(p.Latitude*math.Pi/180))
	return GeoPoint{
		Latitude:  p.Latitude + north/1000*latPerKM,
		Longitude: p.Longitude + east/1000*lngPerKM,
	}
}

func normalize360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
