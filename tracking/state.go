package tracking

import (
	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/instructions"
	"github.com/theoremus-urban-solutions/runroute/route"
)

// Phase of the guidance state machine.
type Phase string

const (
	AwaitingFix Phase = "awaiting_fix"
	Tracking    Phase = "tracking"
	OffRoute    Phase = "off_route"
	Finished    Phase = "finished"
)

// State is the committed guidance state of one run.
// RouteProgressPercent, DistanceTraveledMeters and CurrentInstructionIndex never decrease.
type State struct {
	Phase                   Phase                     `json:"phase"`
	RouteProgressPercent    float64                   `json:"routeProgressPercent"`
	CompletedPath           geo.Polyline              `json:"completedPath"`
	CurrentInstructionIndex int                       `json:"currentInstructionIndex"`
	CurrentInstruction      instructions.Instruction  `json:"currentInstruction"`
	LastValidInstruction    *instructions.Instruction `json:"lastValidInstruction,omitempty"`
	DistanceTraveledMeters  float64                   `json:"distanceTraveledMeters"`
	IsOffRoute              bool                      `json:"isOffRoute"`
}

func (s State) clone() State {
	out := s
	out.CompletedPath = s.CompletedPath.Clone()
	if s.LastValidInstruction != nil {
		v := *s.LastValidInstruction
		out.LastValidInstruction = &v
	}
	return out
}

// RejectReason explains why a sample did not change state.
type RejectReason string

const (
	RejectNone            RejectReason = ""
	RejectLowAccuracy     RejectReason = "low_accuracy"
	RejectTooFast         RejectReason = "too_fast"
	RejectInvalidPosition RejectReason = "invalid_position"
	RejectFinished        RejectReason = "finished"
)

// Update is the outcome of processing one sample.
type Update struct {
	Accepted   bool              `json:"accepted"`
	Reason     RejectReason      `json:"reason,omitempty"`
	Projection *route.Projection `json:"projection,omitempty"`
	// Instruction is what the runner should see after this sample.
	Instruction instructions.Instruction `json:"instruction"`
	State       State                    `json:"state"`
	// Completed is true only on the update that finished the run.
	Completed bool `json:"completed"`
}
