package search

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/runroute/geo"
)

// shelterBuffer tracks the shelter search radius of one generation attempt.
// Each attempt gets its own buffer so a shrink never leaks into the next one.
type shelterBuffer struct {
	s      *Searcher
	center geo.GeoPoint
	radius float64
	areas  orb.MultiPolygon
}

func (s *Searcher) newBuffer(center geo.GeoPoint, target float64) *shelterBuffer {
	radius := s.cfg.InitialBuffer
	if radius <= 0 {
		radius = target / 2
	}
	return &shelterBuffer{s: s, center: center, radius: radius}
}

// Areas returns the sheltered polygons within the current radius, fetching them
// on first use and after every shrink. An empty result is an error.
func (b *shelterBuffer) Areas(ctx context.Context) (orb.MultiPolygon, error) {
	if len(b.areas) > 0 {
		return b.areas, nil
	}
	areas, err := b.s.shelter.NearbyShelters(ctx, b.center, b.radius)
	if err != nil {
		return nil, err
	}
	if len(areas) == 0 {
		return nil, errNoShelters
	}
	b.areas = areas
	return areas, nil
}

// Shrink reduces the radius after a failed call and drops the fetched areas.
// It returns a *ProviderUnavailableError once the radius falls below the floor.
func (b *shelterBuffer) Shrink(provider string, cause error) error {
	b.areas = nil
	b.radius *= b.s.cfg.BufferShrink
	if b.radius < b.s.cfg.BufferFloor {
		b.s.logger.Warn("shelter buffer below floor, giving up", "buffer", b.radius, "provider", provider, "error", cause)
		return &ProviderUnavailableError{Provider: provider, Err: cause}
	}
	b.s.logger.Warn("sheltered routing failed, shrinking buffer", "buffer", b.radius, "provider", provider, "error", cause)
	return nil
}
