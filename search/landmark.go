package search

import (
	"context"
	"math"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
)

// landmarkRoutes builds routes that pass req.Landmark.
//
// When the direct leg already uses at least half the target, the route goes
// out to the landmark and back. Otherwise it closes as a triangle
// start, landmark, intermediate, start, where the intermediate point is moved
// around the start-landmark midpoint until the return leg fits the distance
// left over.
func (s *Searcher) landmarkRoutes(ctx context.Context, req Request, sheltered bool) ([]Candidate, error) {
	start, landmark := req.Start, *req.Landmark

	areas, direct, err := s.directLeg(ctx, req, sheltered)
	if err != nil {
		return nil, err
	}
	remaining := req.Target - direct.Distance
	s.logger.Debug("direct leg to landmark", "distance", direct.Distance, "remaining", remaining)

	if remaining < req.Target/2 {
		path, err := s.routing.Route(ctx, s.routeRequest(areas, start, landmark, start))
		if err != nil {
			return nil, &ProviderUnavailableError{Provider: "routing", Err: err}
		}
		c := newCandidate(path)
		s.logger.Info("candidate accepted", "shape", "out_and_back", "candidate", c.ID, "distance", c.Distance)
		return []Candidate{c}, nil
	}

	mid := geo.Midpoint(start, landmark)
	cands := make([]Candidate, 0, s.cfg.Slots)
	for slot := 0; slot < s.cfg.Slots; slot++ {
		path, err := s.triangle(ctx, start, landmark, mid, remaining, areas)
		if err != nil {
			return nil, err
		}
		c := newCandidate(path)
		s.logger.Info("candidate accepted", "shape", "triangle", "slot", slot+1, "candidate", c.ID, "distance", c.Distance)
		cands = append(cands, c)
	}
	return cands, nil
}

// directLeg routes start to landmark. Sheltered searches fetch the sheltered
// areas first and shrink the buffer until the leg can be routed; the areas
// found are reused for every later request.
func (s *Searcher) directLeg(ctx context.Context, req Request, sheltered bool) (orb.MultiPolygon, *providers.RoutePath, error) {
	if !sheltered {
		path, err := s.routing.Route(ctx, s.routeRequest(nil, req.Start, *req.Landmark))
		if err != nil {
			return nil, nil, &ProviderUnavailableError{Provider: "routing", Err: err}
		}
		return nil, path, nil
	}

	buf := s.newBuffer(req.Start, req.Target)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		areas, err := buf.Areas(ctx)
		if err != nil {
			if err := buf.Shrink("shelter", err); err != nil {
				return nil, nil, err
			}
			continue
		}
		path, err := s.routing.Route(ctx, s.routeRequest(areas, req.Start, *req.Landmark))
		if err != nil {
			if err := buf.Shrink("routing", err); err != nil {
				return nil, nil, err
			}
			continue
		}
		return areas, path, nil
	}
}

// triangle searches for an intermediate point whose return leg
// landmark, intermediate, start is within tolerance of remaining, then routes
// the full loop through it.
func (s *Searcher) triangle(ctx context.Context, start, landmark, mid geo.GeoPoint, remaining float64, areas orb.MultiPolygon) (*providers.RoutePath, error) {
	inter := s.randomIntermediate(mid, remaining)
	var (
		nudges   int
		failures int
		lastErr  error
	)
	for attempt := 1; attempt <= s.cfg.MaxLandmarkAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if nudges > s.cfg.PerturbationLimit {
			inter = s.randomIntermediate(mid, remaining)
			nudges = 0
		}

		trial, err := s.routing.Route(ctx, s.routeRequest(areas, landmark, inter, start))
		if err != nil {
			// The point may be unroutable, e.g. in water. Try elsewhere.
			failures++
			lastErr = err
			s.logger.Debug("return leg failed", "attempt", attempt, "intermediate", inter, "error", err)
			inter = s.randomIntermediate(mid, remaining)
			nudges = 0
			continue
		}

		diff := trial.Distance - remaining
		s.logger.Debug("return leg attempt", "attempt", attempt, "distance", trial.Distance, "remaining", remaining)
		if math.Abs(diff) < s.cfg.Tolerance {
			path, err := s.routing.Route(ctx, s.routeRequest(areas, start, landmark, inter, start))
			if err != nil {
				return nil, &ProviderUnavailableError{Provider: "routing", Err: err}
			}
			return path, nil
		}
		inter = s.perturb(inter, mid, diff, remaining)
		nudges++
	}
	if failures == s.cfg.MaxLandmarkAttempts {
		return nil, &ProviderUnavailableError{Provider: "routing", Err: lastErr}
	}
	return nil, &ExhaustedError{Attempts: s.cfg.MaxLandmarkAttempts}
}

// randomIntermediate places a point up to remaining/2 meters north or south and
// east or west of mid.
func (s *Searcher) randomIntermediate(mid geo.GeoPoint, remaining float64) geo.GeoPoint {
	latWeight := float64(s.rng.IntN(100)-50) / 50
	lngWeight := float64(s.rng.IntN(100)-50) / 50
	return geo.OffsetMeters(mid, latWeight*remaining/2, lngWeight*remaining/2)
}

// perturb moves inter along its offset from mid: towards mid when the return
// leg was too long (diff > 0), away from it when too short. The step is a
// random share of up to a fifth of the offset, scaled by how far off the leg was.
func (s *Searcher) perturb(inter, mid geo.GeoPoint, diff, remaining float64) geo.GeoPoint {
	scale := 1.0
	if remaining > 0 {
		scale = math.Min(1, math.Abs(diff)/remaining)
	}
	step := s.rng.Float64() / 5 * scale
	if diff > 0 {
		step = -step
	}
	return geo.GeoPoint{
		Latitude:  inter.Latitude + step*(inter.Latitude-mid.Latitude),
		Longitude: inter.Longitude + step*(inter.Longitude-mid.Longitude),
	}
}
