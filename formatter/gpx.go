package formatter

import (
	"errors"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/search"
	"github.com/theoremus-urban-solutions/runroute/tracking"
)

// Creator is written into every exported GPX document.
const Creator = "runroute"

var xmlParams = gpx.ToXmlParams{Version: "1.1", Indent: true}

func newGPX(name string, ts time.Time) *gpx.GPX {
	g := &gpx.GPX{Creator: Creator, Name: name}
	if !ts.IsZero() {
		t := ts.UTC()
		g.Time = &t
	}
	return g
}

func track(name string, pl geo.Polyline) gpx.GPXTrack {
	seg := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, len(pl))}
	for i, p := range pl {
		seg.Points[i] = gpx.GPXPoint{Point: gpx.Point{Latitude: p.Latitude, Longitude: p.Longitude}}
	}
	return gpx.GPXTrack{Name: name, Segments: []gpx.GPXTrackSegment{seg}}
}

// PolylineGPX exports pl as a single-track GPX document.
func PolylineGPX(name string, pl geo.Polyline) ([]byte, error) {
	if len(pl) == 0 {
		return nil, errors.New("empty polyline")
	}
	g := newGPX(name, time.Time{})
	g.Tracks = []gpx.GPXTrack{track(name, pl)}
	return g.ToXml(xmlParams)
}

// CandidateSetGPX exports every candidate as its own track.
func CandidateSetGPX(set *search.CandidateSet) ([]byte, error) {
	if len(set.Candidates) == 0 {
		return nil, errors.New("no candidates")
	}
	g := newGPX(string(set.Mode), time.Time{})
	for _, c := range set.Candidates {
		g.Tracks = append(g.Tracks, track(c.ID, c.Polyline))
	}
	return g.ToXml(xmlParams)
}

// RunGPX exports the path covered by a completed run.
func RunGPX(s tracking.RunSummary) ([]byte, error) {
	if len(s.Path) == 0 {
		return nil, errors.New("run has no path")
	}
	g := newGPX(s.RunID, s.Date)
	g.Tracks = []gpx.GPXTrack{track(s.RunID, s.Path)}
	return g.ToXml(xmlParams)
}
