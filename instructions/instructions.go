package instructions

import (
	"fmt"
	"math"
	"strings"

	"github.com/theoremus-urban-solutions/runroute/geo"
)

// Type classifies an instruction.
type Type string

const (
	Straight Type = "straight"
	Slight   Type = "slight"
	Normal   Type = "normal"
	Sharp    Type = "sharp"
	UTurn    Type = "uturn"
	Finish   Type = "finish"
	// Warning is only produced for the live return-to-route message.
	Warning Type = "warning"
)

// Severity of an instruction for display.
type Severity string

const (
	Low    Severity = "low"
	Medium Severity = "medium"
	High   Severity = "high"
)

// Bearing-delta thresholds in degrees.
const (
	StraightThreshold = 30.0
	SlightThreshold   = 45.0
	SharpThreshold    = 110.0
	UTurnThreshold    = 150.0
)

const (
	TextStraight      = "Continue straight"
	TextUTurn         = "Make a U-turn"
	TextFinishLeg     = "Move straight back to the start"
	TextCongrats      = "Congrats on your run!"
	TextReturnToRoute = "Please come back to the route"
)

// Instruction is one step of guidance.
// Interval holds [start, end] indices into the route polyline.
type Instruction struct {
	Text           string   `json:"text"`
	Type           Type     `json:"type"`
	Interval       [2]int   `json:"interval"`
	StreetName     string   `json:"streetName,omitempty"`
	Severity       Severity `json:"severity,omitempty"`
	DistanceToTurn float64  `json:"distanceToTurn,omitempty"`
}

// TurnPoint returns the route index at which the instruction applies.
func (i Instruction) TurnPoint() int { return i.Interval[0] }

// Generate derives the instruction list for pl.
func Generate(pl geo.Polyline) []Instruction {
	n := len(pl)
	if n < 2 {
		return nil
	}

	var out []Instruction
	lastBoundary := 0
	for i := 1; i < n-1; i++ {
		delta := geo.BearingDelta(geo.Bearing(pl[i-1], pl[i]), geo.Bearing(pl[i], pl[i+1]))
		angle := math.Abs(delta)
		if angle < StraightThreshold {
			continue
		}
		if i > lastBoundary {
			out = append(out, newInstruction(TextStraight, Straight, lastBoundary, i))
		}
		direction := "right"
		if delta < 0 {
			direction = "left"
		}
		typ := classify(angle)
		out = append(out, newInstruction(turnText(typ, direction), typ, i, i+1))
		lastBoundary = i + 1
	}

	if lastBoundary < n-1 {
		out = append(out, newInstruction(TextFinishLeg, Finish, lastBoundary, n-1))
	} else {
		out = append(out, Completed(n-1))
	}
	return out
}

func newInstruction(text string, typ Type, start, end int) Instruction {
	return Instruction{
		Text:     text,
		Type:     typ,
		Interval: [2]int{start, end},
		Severity: SeverityOf(typ),
	}
}

func classify(angle float64) Type {
	switch {
	case angle > UTurnThreshold:
		return UTurn
	case angle > SharpThreshold:
		return Sharp
	case angle > SlightThreshold:
		return Normal
	default:
		return Slight
	}
}

func turnText(typ Type, direction string) string {
	switch typ {
	case UTurn:
		return TextUTurn
	case Sharp:
		return "Turn sharp " + direction
	case Normal:
		return "Turn " + direction
	default:
		return "Slight turn " + direction
	}
}

// SeverityOf maps an instruction type to its display severity.
func SeverityOf(t Type) Severity {
	switch t {
	case UTurn, Warning:
		return High
	case Slight, Straight, Finish:
		return Low
	default:
		return Medium
	}
}

// IsTurn reports whether the type is announced with a distance prefix.
func (t Type) IsTurn() bool {
	switch t {
	case Slight, Normal, Sharp, UTurn:
		return true
	}
	return false
}

// Format returns a copy of inst prepared for display at distanceToTurn meters
// from its turn point. Turns at 10 m or more get an "In {n}m" prefix rounded to
// the nearest 10 m.
func Format(inst Instruction, distanceToTurn float64) Instruction {
	out := inst
	out.Severity = SeverityOf(inst.Type)
	out.DistanceToTurn = distanceToTurn
	if inst.Type.IsTurn() && distanceToTurn >= 10 {
		rounded := int(math.Round(distanceToTurn/10) * 10)
		out.Text = fmt.Sprintf("In %dm, %s", rounded, strings.ToLower(inst.Text))
	}
	return out
}

// ReturnToRoute is the warning shown while the runner is off route.
func ReturnToRoute() Instruction {
	return Instruction{
		Text:     TextReturnToRoute,
		Type:     Warning,
		Severity: High,
	}
}

// Completed is the instruction shown once no turn lies ahead.
func Completed(lastIndex int) Instruction {
	return newInstruction(TextCongrats, Finish, lastIndex, lastIndex)
}

// Validate checks that ins partitions [0, n-1] and ends with a single finish.
func Validate(ins []Instruction, n int) error {
	if n < 2 {
		return fmt.Errorf("route has %d points", n)
	}
	if len(ins) == 0 {
		return fmt.Errorf("no instructions")
	}
	if ins[0].Interval[0] != 0 {
		return fmt.Errorf("first instruction starts at %d", ins[0].Interval[0])
	}
	for i, inst := range ins {
		if inst.Interval[0] > inst.Interval[1] {
			return fmt.Errorf("instruction %d has reversed interval %v", i, inst.Interval)
		}
		if inst.Interval[1] > n-1 {
			return fmt.Errorf("instruction %d ends past the route at %d", i, inst.Interval[1])
		}
		if i > 0 && ins[i-1].Interval[1] != inst.Interval[0] {
			return fmt.Errorf("gap or overlap between instructions %d and %d", i-1, i)
		}
		if inst.Type == Finish && i != len(ins)-1 {
			return fmt.Errorf("finish instruction at position %d is not last", i)
		}
	}
	last := ins[len(ins)-1]
	if last.Type != Finish {
		return fmt.Errorf("last instruction has type %s", last.Type)
	}
	if last.Interval[1] != n-1 {
		return fmt.Errorf("instructions end at %d, route ends at %d", last.Interval[1], n-1)
	}
	return nil
}
