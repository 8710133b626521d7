package tracking

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/instructions"
	"github.com/theoremus-urban-solutions/runroute/providers"
	"github.com/theoremus-urban-solutions/runroute/route"
)

// Tracker is the guidance state machine for one run.
type Tracker struct {
	idx      *route.Index
	ins      []instructions.Instruction
	insValid bool
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time

	state      State
	heading    float64
	hasHeading bool
	anchor     *geo.GeoPoint
	bestAlong  float64
	startedAt  time.Time
	finishedAt time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock overrides time.Now for samples without timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a tracker for idx and its planned instructions.
// A nil index or an instruction list that does not match the route does not
// fail construction; guidance then falls back to the last valid instruction.
func NewTracker(idx *route.Index, ins []instructions.Instruction, cfg Config, opts ...Option) *Tracker {
	t := &Tracker{
		idx:    idx,
		ins:    ins,
		cfg:    cfg.withDefaults(),
		logger: slog.Default(),
		now:    time.Now,
		state:  State{Phase: AwaitingFix},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "tracking")
	if idx != nil {
		if err := instructions.Validate(ins, len(idx.Points)); err != nil {
			t.logger.Warn("instructions do not match route, guidance will hold the last instruction", "error", err)
		} else {
			t.insValid = true
		}
	}
	if t.insValid {
		first := instructions.Format(ins[0], 0)
		t.state.CurrentInstruction = first
		t.state.LastValidInstruction = &first
	}
	return t
}

// Start requests location permission and an initial fix. Permission problems are
// reported as *LocationUnavailableError and a poor fix as *LowAccuracyError;
// both can be retried by calling Start again.
func (t *Tracker) Start(ctx context.Context, lp providers.LocationProvider) error {
	if t.state.Phase != AwaitingFix {
		return nil
	}
	status, err := lp.RequestPermission(ctx)
	if err != nil {
		return &LocationUnavailableError{Err: err}
	}
	if status != providers.PermissionGranted {
		return &LocationUnavailableError{Err: ErrPermissionDenied}
	}
	sample, err := lp.CurrentPosition(ctx)
	if err != nil {
		return &LocationUnavailableError{Err: err}
	}
	if !(sample.Accuracy <= t.cfg.AccuracyThreshold) {
		return &LowAccuracyError{Accuracy: sample.Accuracy, Threshold: t.cfg.AccuracyThreshold}
	}
	if !sample.Position.Valid() {
		return &LocationUnavailableError{Err: errInvalidFix}
	}
	t.begin(sample)
	pos := sample.Position
	t.anchor = &pos
	return nil
}

// UpdateHeading records the latest compass heading in degrees.
func (t *Tracker) UpdateHeading(h float64) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return
	}
	t.heading = h
	t.hasHeading = true
}

// State returns a copy of the committed state.
func (t *Tracker) State() State {
	return t.state.clone()
}

// Process runs one sample through the state machine.
func (t *Tracker) Process(s providers.Sample) Update {
	if t.state.Phase == Finished {
		return t.reject(RejectFinished)
	}
	if reason := t.gate(s); reason != RejectNone {
		t.logger.Debug("sample rejected", "reason", reason, "accuracy", s.Accuracy, "speed", s.Speed)
		return t.reject(reason)
	}
	if t.state.Phase == AwaitingFix {
		t.begin(s)
	}

	if t.idx == nil {
		t.fallbackInstruction()
		return t.accepted(nil, false)
	}

	proj := t.idx.Project(s.Position, t.headingFor(s), t.cfg.HeadingWeight)
	if proj.DistanceFromRoute > t.cfg.OffRouteThreshold || proj.DistanceFromRoute > t.cfg.CorridorWidth {
		if !t.state.IsOffRoute {
			t.logger.Info("runner left the route", "distance_from_route", proj.DistanceFromRoute)
		}
		t.state.IsOffRoute = true
		t.state.Phase = OffRoute
		t.state.CurrentInstruction = instructions.ReturnToRoute()
		return t.accepted(&proj, false)
	}

	if t.state.IsOffRoute {
		t.logger.Info("runner back on route", "distance_from_route", proj.DistanceFromRoute)
	}
	t.state.IsOffRoute = false
	t.state.Phase = Tracking

	along := t.idx.DistanceAlong(proj)
	t.advanceProgress(proj, along)
	t.accumulateDistance(s.Position)
	t.selectInstruction(along)

	completed := false
	if t.state.RouteProgressPercent >= t.cfg.CompletionPercent && t.state.DistanceTraveledMeters >= t.cfg.MinCompletionDistance {
		t.state.Phase = Finished
		t.finishedAt = t.timestamp(s)
		completed = true
		t.logger.Info("run finished",
			"progress", t.state.RouteProgressPercent,
			"distance_traveled", t.state.DistanceTraveledMeters)
	}
	return t.accepted(&proj, completed)
}

func (t *Tracker) gate(s providers.Sample) RejectReason {
	if !s.Position.Valid() {
		return RejectInvalidPosition
	}
	if !(s.Accuracy <= t.cfg.AccuracyThreshold) {
		return RejectLowAccuracy
	}
	if s.Speed > t.cfg.MaxSpeed {
		return RejectTooFast
	}
	return RejectNone
}

func (t *Tracker) begin(s providers.Sample) {
	t.state.Phase = Tracking
	t.startedAt = t.timestamp(s)
	t.logger.Info("tracking started", "latitude", s.Position.Latitude, "longitude", s.Position.Longitude)
}

func (t *Tracker) timestamp(s providers.Sample) time.Time {
	if s.Timestamp.IsZero() {
		return t.now()
	}
	return s.Timestamp
}

// headingFor prefers the compass stream, then the sample's own course, then north.
func (t *Tracker) headingFor(s providers.Sample) float64 {
	if t.hasHeading {
		return t.heading
	}
	if !math.IsNaN(s.Heading) && !math.IsInf(s.Heading, 0) {
		return s.Heading
	}
	return 0
}

func (t *Tracker) advanceProgress(proj route.Projection, along float64) {
	progress := 0.0
	if t.idx.TotalDistance > 0 {
		progress = 100 * along / t.idx.TotalDistance
	}
	if progress > t.state.RouteProgressPercent {
		t.state.RouteProgressPercent = math.Min(progress, 100)
	}
	if along < t.bestAlong {
		return
	}
	t.bestAlong = along

	path := make(geo.Polyline, 0, proj.SegmentIndex+2)
	path = append(path, t.idx.Points[:proj.SegmentIndex+1]...)
	if geo.Distance(t.idx.Points[proj.SegmentIndex], proj.Point) > t.cfg.ProjectionMinGap {
		path = append(path, proj.Point)
	}
	t.state.CompletedPath = path
}

func (t *Tracker) accumulateDistance(pos geo.GeoPoint) {
	if t.anchor == nil {
		t.anchor = &pos
		return
	}
	d := geo.Distance(*t.anchor, pos)
	if d >= t.cfg.MinDistance {
		t.state.DistanceTraveledMeters += d
		t.anchor = &pos
	}
}

// selectInstruction scans forward from the current index for the first
// instruction whose turn point is still ahead of along.
func (t *Tracker) selectInstruction(along float64) {
	if !t.insValid {
		t.fallbackInstruction()
		return
	}
	for i := t.state.CurrentInstructionIndex; i < len(t.ins); i++ {
		toTurn := t.idx.CumulativeDistance[t.ins[i].TurnPoint()] - along
		if toTurn > 0 {
			t.commitInstruction(i, instructions.Format(t.ins[i], toTurn))
			return
		}
	}
	last := len(t.ins) - 1
	t.commitInstruction(last, instructions.Format(t.ins[last], 0))
}

func (t *Tracker) commitInstruction(i int, inst instructions.Instruction) {
	if i > t.state.CurrentInstructionIndex {
		t.logger.Debug("instruction advanced", "index", i, "text", inst.Text)
		t.state.CurrentInstructionIndex = i
	}
	t.state.CurrentInstruction = inst
	v := inst
	t.state.LastValidInstruction = &v
}

func (t *Tracker) fallbackInstruction() {
	if t.state.LastValidInstruction != nil {
		t.state.CurrentInstruction = *t.state.LastValidInstruction
	}
}

func (t *Tracker) reject(reason RejectReason) Update {
	return Update{
		Accepted:    false,
		Reason:      reason,
		Instruction: t.state.CurrentInstruction,
		State:       t.state.clone(),
	}
}

func (t *Tracker) accepted(proj *route.Projection, completed bool) Update {
	return Update{
		Accepted:    true,
		Projection:  proj,
		Instruction: t.state.CurrentInstruction,
		State:       t.state.clone(),
		Completed:   completed,
	}
}

// NearStart reports whether p is close enough to the start of the route to begin a run.
func NearStart(p geo.GeoPoint, idx *route.Index, cfg Config) bool {
	if idx == nil || len(idx.Points) == 0 {
		return false
	}
	return geo.Distance(p, idx.Start()) <= cfg.withDefaults().StartProximity
}
