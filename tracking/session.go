package tracking

import (
	"context"

	"github.com/theoremus-urban-solutions/runroute/providers"
)

// Session feeds position and heading streams into a Tracker from a single loop.
// Each message is applied to the tracker's current state in arrival order; no
// sample is dropped for being stale, the tracker's entry gate filters them.
type Session struct {
	tracker    *Tracker
	onUpdate   func(Update)
	onComplete func(RunSummary)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// OnUpdate registers a callback invoked after every position sample.
func OnUpdate(fn func(Update)) SessionOption {
	return func(s *Session) { s.onUpdate = fn }
}

// OnComplete registers a callback invoked once when the run finishes.
func OnComplete(fn func(RunSummary)) SessionOption {
	return func(s *Session) { s.onComplete = fn }
}

// NewSession creates a session driving t.
func NewSession(t *Tracker, opts ...SessionOption) *Session {
	s := &Session{tracker: t}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tracker returns the tracker driven by the session.
func (s *Session) Tracker() *Tracker { return s.tracker }

// Run processes messages until the run finishes, both streams are closed, or ctx
// is cancelled. Cancellation stops both streams and returns ctx.Err().
func (s *Session) Run(ctx context.Context, positions <-chan providers.Sample, headings <-chan float64) error {
	for positions != nil || headings != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case h, ok := <-headings:
			if !ok {
				headings = nil
				continue
			}
			s.tracker.UpdateHeading(h)
		case sample, ok := <-positions:
			if !ok {
				positions = nil
				continue
			}
			u := s.tracker.Process(sample)
			if s.onUpdate != nil {
				s.onUpdate(u)
			}
			if u.Completed {
				if s.onComplete != nil {
					s.onComplete(s.tracker.Summary())
				}
				return nil
			}
		}
	}
	return nil
}
