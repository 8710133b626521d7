// Package providers defines the contracts the engine consumes from routing,
// shelter and location collaborators, plus the HTTP error type shared by the
// adapters that implement them.
package providers

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/runroute/geo"
)

// RoundTrip asks the routing provider for a closed loop of roughly Distance meters.
type RoundTrip struct {
	Distance float64
	Seed     int
}

// RouteRequest describes one routing query.
// When Areas is non-empty the provider weights edges inside the areas by
// InsidePriority and all other edges by OutsidePriority.
type RouteRequest struct {
	Points          []geo.GeoPoint
	Profile         string
	RoundTrip       *RoundTrip
	Areas           orb.MultiPolygon
	InsidePriority  float64
	OutsidePriority float64
}

// ProviderInstruction is a turn instruction in the provider's own vocabulary.
type ProviderInstruction struct {
	Text       string  `json:"text"`
	StreetName string  `json:"streetName,omitempty"`
	Interval   [2]int  `json:"interval"`
	Distance   float64 `json:"distance"`
	Sign       int     `json:"sign"`
}

// RoutePath is a single path returned by the routing provider.
type RoutePath struct {
	Polyline     geo.Polyline
	Distance     float64
	Instructions []ProviderInstruction
}

// RoutingProvider returns one path per request. Re-querying with the same
// round-trip seed must return the same path.
type RoutingProvider interface {
	Route(ctx context.Context, req RouteRequest) (*RoutePath, error)
}

// ShelteredSegment is a portion of a route that overlaps sheltered geometry.
type ShelteredSegment struct {
	Path     geo.Polyline
	Distance float64
}

// ShelterProvider answers sheltered-geometry queries.
type ShelterProvider interface {
	NearbyShelters(ctx context.Context, center geo.GeoPoint, buffer float64) (orb.MultiPolygon, error)
	Intersections(ctx context.Context, pl geo.Polyline) ([]ShelteredSegment, error)
}

// PermissionStatus is the outcome of a location permission request.
type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
)

// Sample is one location fix. Heading and Speed are NaN when unknown.
type Sample struct {
	Position  geo.GeoPoint
	Accuracy  float64
	Speed     float64
	Heading   float64
	Timestamp time.Time
}

// LocationProvider delivers fixes after permission has been granted.
type LocationProvider interface {
	RequestPermission(ctx context.Context) (PermissionStatus, error)
	CurrentPosition(ctx context.Context) (Sample, error)
}
