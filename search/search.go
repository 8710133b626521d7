package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
)

// seedRange is the number of distinct round-trip seeds requested.
const seedRange = 100

// Mode identifies the kind of search that produced a candidate set.
type Mode string

const (
	ModeRoundTrip          Mode = "round_trip"
	ModeShelteredRoundTrip Mode = "sheltered_round_trip"
	ModeLandmark           Mode = "landmark"
	ModeShelteredLandmark  Mode = "sheltered_landmark"
)

// Request describes the route the runner asked for.
type Request struct {
	Start geo.GeoPoint
	// Target is the requested route length in meters.
	Target float64
	// Landmark, when set, is a point the route must pass.
	Landmark  *geo.GeoPoint
	Sheltered bool
}

// Candidate is one generated route.
type Candidate struct {
	ID       string       `json:"id"`
	Polyline geo.Polyline `json:"polyline"`
	Distance float64      `json:"distance"`
	// CoveredDistance is the sheltered length (m) of the route. Zero when no
	// shelter provider is configured.
	CoveredDistance      float64                         `json:"coveredDistance"`
	Covered              []geo.Polyline                  `json:"covered,omitempty"`
	ProviderInstructions []providers.ProviderInstruction `json:"providerInstructions,omitempty"`
}

// CandidateSet is the outcome of a search.
type CandidateSet struct {
	Mode       Mode        `json:"mode"`
	Target     float64     `json:"target"`
	Candidates []Candidate `json:"candidates"`
}

// Searcher generates candidate routes from a routing provider and an optional
// shelter provider.
type Searcher struct {
	routing providers.RoutingProvider
	shelter providers.ShelterProvider
	cfg     Config
	rng     *rand.Rand
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithRand sets the random source used for seeds and intermediate points.
func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithLogger sets the logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Searcher. shelter may be nil, in which case sheltered requests
// fail and candidates carry no coverage.
func New(routing providers.RoutingProvider, shelter providers.ShelterProvider, cfg Config, opts ...Option) *Searcher {
	now := uint64(time.Now().UnixNano())
	s := &Searcher{
		routing: routing,
		shelter: shelter,
		cfg:     cfg.withDefaults(),
		rng:     rand.New(rand.NewPCG(now, now>>32)),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "search")
	return s
}

// Search runs the search matching req and returns up to Config.Slots candidates.
func (s *Searcher) Search(ctx context.Context, req Request) (*CandidateSet, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	mode := modeFor(req)
	s.logger.Info("searching routes", "mode", mode, "target", req.Target)

	var (
		cands []Candidate
		err   error
	)
	switch mode {
	case ModeRoundTrip:
		cands, err = s.roundTrips(ctx, req)
	case ModeShelteredRoundTrip:
		cands, err = s.shelteredRoundTrips(ctx, req)
	case ModeLandmark, ModeShelteredLandmark:
		cands, err = s.landmarkRoutes(ctx, req, req.Sheltered)
	}
	if err != nil {
		return nil, err
	}

	// Sheltered round trips are already scored.
	if s.shelter != nil && mode != ModeShelteredRoundTrip {
		for i := range cands {
			if err := s.annotate(ctx, &cands[i]); err != nil {
				if req.Sheltered {
					return nil, err
				}
				s.logger.Warn("coverage unavailable", "candidate", cands[i].ID, "error", err)
			}
		}
	}

	return &CandidateSet{Mode: mode, Target: req.Target, Candidates: cands}, nil
}

func (s *Searcher) validate(req Request) error {
	if s.routing == nil {
		return errors.New("no routing provider configured")
	}
	if !req.Start.Valid() {
		return fmt.Errorf("invalid start point %v", req.Start)
	}
	if req.Target <= 0 || math.IsNaN(req.Target) || math.IsInf(req.Target, 0) {
		return fmt.Errorf("invalid target distance %v", req.Target)
	}
	if req.Landmark != nil && !req.Landmark.Valid() {
		return fmt.Errorf("invalid landmark %v", *req.Landmark)
	}
	if req.Sheltered && s.shelter == nil {
		return errors.New("sheltered search requires a shelter provider")
	}
	return nil
}

func modeFor(req Request) Mode {
	switch {
	case req.Landmark != nil && req.Sheltered:
		return ModeShelteredLandmark
	case req.Landmark != nil:
		return ModeLandmark
	case req.Sheltered:
		return ModeShelteredRoundTrip
	default:
		return ModeRoundTrip
	}
}

func (s *Searcher) roundTrips(ctx context.Context, req Request) ([]Candidate, error) {
	cands := make([]Candidate, 0, s.cfg.Slots)
	for slot := 0; slot < s.cfg.Slots; slot++ {
		path, err := s.roundTrip(ctx, req.Start, req.Target)
		if err != nil {
			return nil, err
		}
		c := newCandidate(path)
		s.logger.Info("candidate accepted", "slot", slot+1, "candidate", c.ID, "distance", c.Distance)
		cands = append(cands, c)
	}
	return cands, nil
}

// roundTrip requests seeded round trips until one is within tolerance.
func (s *Searcher) roundTrip(ctx context.Context, start geo.GeoPoint, target float64) (*providers.RoutePath, error) {
	var (
		lastErr  error
		failures int
	)
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seed := s.rng.IntN(seedRange)
		path, err := s.routing.Route(ctx, s.roundTripRequest(start, target, seed, nil))
		if err != nil {
			failures++
			lastErr = err
			s.logger.Debug("round trip request failed", "attempt", attempt, "seed", seed, "error", err)
			continue
		}
		s.logger.Debug("round trip attempt", "attempt", attempt, "seed", seed, "distance", path.Distance)
		if s.withinTolerance(path.Distance, target) {
			return path, nil
		}
	}
	if failures == s.cfg.MaxAttempts {
		return nil, &ProviderUnavailableError{Provider: "routing", Err: lastErr}
	}
	return nil, &ExhaustedError{Attempts: s.cfg.MaxAttempts}
}

func (s *Searcher) shelteredRoundTrips(ctx context.Context, req Request) ([]Candidate, error) {
	best := NewTopK(s.cfg.Slots)
	for i := 0; i < s.cfg.MaxShelterIterations; i++ {
		path, err := s.shelteredRoundTrip(ctx, req.Start, req.Target)
		if err != nil {
			var exhausted *ExhaustedError
			if errors.As(err, &exhausted) && best.Len() > 0 {
				s.logger.Warn("stopping sheltered search early", "iteration", i+1, "kept", best.Len(), "error", err)
				break
			}
			return nil, err
		}
		c := newCandidate(path)
		if err := s.annotate(ctx, &c); err != nil {
			return nil, err
		}
		if best.Offer(c) {
			s.logger.Info("candidate retained", "iteration", i+1, "candidate", c.ID, "covered", c.CoveredDistance)
		}
	}
	return best.Candidates(), nil
}

// shelteredRoundTrip finds one round trip biased to sheltered areas. Provider
// failures shrink the shelter buffer; routes outside tolerance are retried
// with a new seed on the same areas.
func (s *Searcher) shelteredRoundTrip(ctx context.Context, start geo.GeoPoint, target float64) (*providers.RoutePath, error) {
	buf := s.newBuffer(start, target)
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		areas, err := buf.Areas(ctx)
		if err != nil {
			if err := buf.Shrink("shelter", err); err != nil {
				return nil, err
			}
			continue
		}
		seed := s.rng.IntN(seedRange)
		path, err := s.routing.Route(ctx, s.roundTripRequest(start, target, seed, areas))
		if err != nil {
			if err := buf.Shrink("routing", err); err != nil {
				return nil, err
			}
			continue
		}
		attempts++
		s.logger.Debug("sheltered round trip attempt", "attempt", attempts, "seed", seed, "buffer", buf.radius, "distance", path.Distance)
		if s.withinTolerance(path.Distance, target) {
			return path, nil
		}
		if attempts >= s.cfg.MaxAttempts {
			return nil, &ExhaustedError{Attempts: attempts}
		}
	}
}

// annotate fills in the sheltered coverage of c.
func (s *Searcher) annotate(ctx context.Context, c *Candidate) error {
	segs, err := s.shelter.Intersections(ctx, c.Polyline)
	if err != nil {
		return &ProviderUnavailableError{Provider: "shelter", Err: err}
	}
	c.CoveredDistance = 0
	c.Covered = c.Covered[:0]
	for _, seg := range segs {
		c.CoveredDistance += seg.Distance
		c.Covered = append(c.Covered, seg.Path)
	}
	return nil
}

func (s *Searcher) roundTripRequest(start geo.GeoPoint, target float64, seed int, areas orb.MultiPolygon) providers.RouteRequest {
	req := s.routeRequest(areas, start)
	req.RoundTrip = &providers.RoundTrip{Distance: target, Seed: seed}
	return req
}

func (s *Searcher) routeRequest(areas orb.MultiPolygon, points ...geo.GeoPoint) providers.RouteRequest {
	return providers.RouteRequest{
		Points:          points,
		Profile:         s.cfg.Profile,
		Areas:           areas,
		InsidePriority:  s.cfg.ShelteredPriority,
		OutsidePriority: s.cfg.UnshelteredPriority,
	}
}

func (s *Searcher) withinTolerance(distance, target float64) bool {
	return math.Abs(distance-target) < s.cfg.Tolerance
}

func newCandidate(p *providers.RoutePath) Candidate {
	return Candidate{
		ID:                   uuid.NewString(),
		Polyline:             p.Polyline,
		Distance:             p.Distance,
		ProviderInstructions: p.Instructions,
	}
}
