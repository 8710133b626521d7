package formatter

import (
	"encoding/json"
	"time"

	"github.com/theoremus-urban-solutions/runroute/route"
	"github.com/theoremus-urban-solutions/runroute/search"
	"github.com/theoremus-urban-solutions/runroute/tracking"
)

// CandidateSetJSON serializes a search result.
func CandidateSetJSON(set *search.CandidateSet, now time.Time) ([]byte, error) {
	return json.Marshal(WrapCandidateSet(set, now))
}

// InstructionsJSON serializes the planned guidance for idx.
func InstructionsJSON(idx *route.Index, now time.Time) ([]byte, error) {
	return json.Marshal(WrapInstructions(idx, now))
}

// RunSummaryJSON serializes a completed run.
func RunSummaryJSON(s tracking.RunSummary) ([]byte, error) {
	return json.Marshal(WrapRunSummary(s))
}
