package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
	"github.com/theoremus-urban-solutions/runroute/route"
	"github.com/theoremus-urban-solutions/runroute/tracking"
)

// LoadTrack reads every track point of a GPX document as a location sample.
func LoadTrack(r io.Reader) ([]providers.Sample, error) {
	g, err := gpx.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpx: %w", err)
	}

	var points []gpx.GPXPoint
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			points = append(points, seg.Points...)
		}
	}
	if len(points) == 0 {
		return nil, errors.New("gpx has no track points")
	}

	samples := make([]providers.Sample, len(points))
	for i, p := range points {
		s := providers.Sample{
			Position:  geo.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude},
			Speed:     math.NaN(),
			Heading:   math.NaN(),
			Timestamp: p.Timestamp,
		}
		if i > 0 {
			prev := samples[i-1]
			s.Heading = geo.Bearing(prev.Position, s.Position)
			if dt := s.Timestamp.Sub(prev.Timestamp).Seconds(); !prev.Timestamp.IsZero() && !s.Timestamp.IsZero() && dt > 0 {
				s.Speed = geo.Distance(prev.Position, s.Position) / dt
			}
		}
		samples[i] = s
	}
	if len(samples) > 1 {
		samples[0].Heading = samples[1].Heading
	}
	return samples, nil
}

// LoadTrackFile reads a GPX track from path.
func LoadTrackFile(path string) ([]providers.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadTrack(f)
}

// RouteFromGPX builds a route index from the first track, or the first route
// when the document has no tracks.
func RouteFromGPX(r io.Reader) (*route.Index, error) {
	g, err := gpx.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpx: %w", err)
	}

	var pl geo.Polyline
	switch {
	case len(g.Tracks) > 0:
		for _, seg := range g.Tracks[0].Segments {
			for _, p := range seg.Points {
				pl = append(pl, geo.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude})
			}
		}
	case len(g.Routes) > 0:
		for _, p := range g.Routes[0].Points {
			pl = append(pl, geo.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude})
		}
	}
	return route.Build(pl)
}

// LoadRoute reads a route from a GPX file or from an index cached with
// route.SerializeIndexToFile (.gob).
func LoadRoute(path string) (*route.Index, error) {
	if strings.EqualFold(filepath.Ext(path), ".gob") {
		return route.DeserializeIndexFromFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return RouteFromGPX(f)
}

// Option configures Run.
type Option func(*options)

type options struct {
	speedup float64
}

// WithSpeedup replays samples in real time divided by factor. Without it
// samples are delivered as fast as the session consumes them.
func WithSpeedup(factor float64) Option {
	return func(o *options) { o.speedup = factor }
}

// Run delivers samples to the session in order and returns when the run
// finishes, the samples are exhausted or ctx is cancelled.
func Run(ctx context.Context, s *tracking.Session, samples []providers.Sample, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The stream is only closed once every sample was delivered, so a
	// cancelled replay is reported as cancelled rather than as exhausted.
	positions := make(chan providers.Sample)
	go func() {
		for i, smp := range samples {
			if i > 0 && o.speedup > 0 {
				if !wait(ctx, smp.Timestamp.Sub(samples[i-1].Timestamp), o.speedup) {
					return
				}
			}
			select {
			case positions <- smp:
			case <-ctx.Done():
				return
			}
		}
		close(positions)
	}()
	return s.Run(ctx, positions, nil)
}

func wait(ctx context.Context, gap time.Duration, speedup float64) bool {
	if gap <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(time.Duration(float64(gap) / speedup))
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// TrackProvider serves the first sample of a recorded track as the initial fix.
type TrackProvider struct {
	Samples []providers.Sample
}

// RequestPermission always grants access.
func (p *TrackProvider) RequestPermission(context.Context) (providers.PermissionStatus, error) {
	return providers.PermissionGranted, nil
}

// CurrentPosition returns the first recorded sample.
func (p *TrackProvider) CurrentPosition(context.Context) (providers.Sample, error) {
	if len(p.Samples) == 0 {
		return providers.Sample{}, errors.New("track is empty")
	}
	return p.Samples[0], nil
}
