package formatter

import (
	"time"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/instructions"
	"github.com/theoremus-urban-solutions/runroute/route"
	"github.com/theoremus-urban-solutions/runroute/search"
	"github.com/theoremus-urban-solutions/runroute/tracking"
	"github.com/theoremus-urban-solutions/runroute/utils"
)

// ArrowSpacing is the distance between direction markers in meters.
const ArrowSpacing = 80.0

// CandidateSetResponse is the search result as returned to clients.
type CandidateSetResponse struct {
	ResponseTimestamp string          `json:"responseTimestamp"`
	Mode              search.Mode     `json:"mode"`
	Target            float64         `json:"target"`
	Candidates        []CandidateView `json:"candidates"`
}

// CandidateView is one candidate with its planned guidance.
type CandidateView struct {
	ID                   string                          `json:"id"`
	Distance             float64                         `json:"distance"`
	DisplayDistance      string                          `json:"displayDistance"`
	CoveredDistance      float64                         `json:"coveredDistance"`
	Polyline             string                          `json:"polyline"`
	Points               [][]float64                     `json:"points"`
	Covered              [][][]float64                   `json:"covered,omitempty"`
	Instructions         []instructions.Instruction      `json:"instructions"`
	// ProviderInstructions are the routing provider's own steps, kept with a
	// selected route.
	ProviderInstructions []instructions.Instruction `json:"providerInstructions,omitempty"`
	Arrows               []route.Arrow                   `json:"arrows,omitempty"`
}

// InstructionsResponse is the planned guidance for a single route.
type InstructionsResponse struct {
	ResponseTimestamp string                     `json:"responseTimestamp"`
	TotalDistance     float64                    `json:"totalDistance"`
	Instructions      []instructions.Instruction `json:"instructions"`
	Visits            []route.SegmentVisit       `json:"visits"`
	Arrows            []route.Arrow              `json:"arrows"`
}

// RunSummaryResponse is a completed run in display units.
type RunSummaryResponse struct {
	RunID    string `json:"runId"`
	Distance string `json:"distance"`
	Time     string `json:"time"`
	Pace     string `json:"pace"`
	Date     string `json:"date"`
	Points   int    `json:"points"`
}

// WrapCandidateSet builds the client view of set.
func WrapCandidateSet(set *search.CandidateSet, now time.Time) *CandidateSetResponse {
	res := &CandidateSetResponse{
		ResponseTimestamp: utils.Iso8601(now),
		Mode:              set.Mode,
		Target:            set.Target,
		Candidates:        make([]CandidateView, 0, len(set.Candidates)),
	}
	for _, c := range set.Candidates {
		view := CandidateView{
			ID:                   c.ID,
			Distance:             c.Distance,
			DisplayDistance:      utils.PresentableDistance(c.Distance),
			CoveredDistance:      c.CoveredDistance,
			Polyline:             geo.EncodePolyline(c.Polyline),
			Points:               c.Polyline.Pairs(),
			Instructions:         instructions.Generate(c.Polyline),
			ProviderInstructions: instructions.FromProvider(c.ProviderInstructions),
		}
		for _, cov := range c.Covered {
			view.Covered = append(view.Covered, cov.Pairs())
		}
		if idx, err := route.Build(c.Polyline); err == nil {
			view.Arrows = idx.Arrows(ArrowSpacing)
		}
		res.Candidates = append(res.Candidates, view)
	}
	return res
}

// WrapInstructions plans guidance for idx.
func WrapInstructions(idx *route.Index, now time.Time) *InstructionsResponse {
	return &InstructionsResponse{
		ResponseTimestamp: utils.Iso8601(now),
		TotalDistance:     idx.TotalDistance,
		Instructions:      instructions.Generate(idx.Points),
		Visits:            route.PathVisits(idx.Points),
		Arrows:            idx.Arrows(ArrowSpacing),
	}
}

// WrapRunSummary converts a run summary into display units.
func WrapRunSummary(s tracking.RunSummary) *RunSummaryResponse {
	return &RunSummaryResponse{
		RunID:    s.RunID,
		Distance: utils.Kilometers(s.Distance),
		Time:     utils.Elapsed(s.Elapsed),
		Pace:     utils.Pace(s.Pace),
		Date:     utils.Iso8601Date(s.Date),
		Points:   len(s.Path),
	}
}
