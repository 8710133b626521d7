package instructions

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
)

var origin = geo.GeoPoint{Latitude: 1.300, Longitude: 103.800}

// leg moves meters along bearing from p.
func leg(p geo.GeoPoint, bearing, meters float64) geo.GeoPoint {
	rad := bearing * math.Pi / 180
	return geo.OffsetMeters(p, meters*math.Cos(rad), meters*math.Sin(rad))
}

// path builds a polyline from a start point and a list of (bearing, meters) legs.
func path(legs ...[2]float64) geo.Polyline {
	pl := geo.Polyline{origin}
	for _, l := range legs {
		pl = append(pl, leg(pl[len(pl)-1], l[0], l[1]))
	}
	return pl
}

func TestGenerate_StraightRoute(t *testing.T) {
	ins := Generate(path([2]float64{0, 100}, [2]float64{5, 100}))
	require.Len(t, ins, 1)
	assert.Equal(t, Finish, ins[0].Type)
	assert.Equal(t, TextFinishLeg, ins[0].Text)
	assert.Equal(t, [2]int{0, 2}, ins[0].Interval)
}

func TestGenerate_TwoPoints(t *testing.T) {
	ins := Generate(path([2]float64{0, 100}))
	require.Len(t, ins, 1)
	assert.Equal(t, [2]int{0, 1}, ins[0].Interval)
	assert.Equal(t, Finish, ins[0].Type)
	assert.Nil(t, Generate(geo.Polyline{origin}))
}

func TestGenerate_RightTurn(t *testing.T) {
	ins := Generate(path([2]float64{0, 100}, [2]float64{90, 100}, [2]float64{90, 100}))
	require.Len(t, ins, 3)

	assert.Equal(t, Instruction{Text: TextStraight, Type: Straight, Interval: [2]int{0, 1}, Severity: Low}, ins[0])
	assert.Equal(t, Instruction{Text: "Turn right", Type: Normal, Interval: [2]int{1, 2}, Severity: Medium}, ins[1])
	assert.Equal(t, Instruction{Text: TextFinishLeg, Type: Finish, Interval: [2]int{2, 3}, Severity: Low}, ins[2])
}

func TestGenerate_TurnAtLastVertexGivesZeroLengthFinish(t *testing.T) {
	ins := Generate(path([2]float64{0, 100}, [2]float64{270, 100}))
	require.Len(t, ins, 3)
	assert.Equal(t, "Turn left", ins[1].Text)
	assert.Equal(t, Instruction{Text: TextCongrats, Type: Finish, Interval: [2]int{2, 2}, Severity: Low}, ins[2])
	assert.Equal(t, Completed(2), ins[2])
}

func TestGenerate_Classification(t *testing.T) {
	tests := []struct {
		name     string
		bearing  float64
		typ      Type
		text     string
		severity Severity
	}{
		{"slight left", 320, Slight, "Slight turn left", Low},
		{"slight right", 40, Slight, "Slight turn right", Low},
		{"normal right", 80, Normal, "Turn right", Medium},
		{"normal left", 260, Normal, "Turn left", Medium},
		{"sharp right", 130, Sharp, "Turn sharp right", Medium},
		{"sharp left", 225, Sharp, "Turn sharp left", Medium},
		{"u-turn", 175, UTurn, TextUTurn, High},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Generate(path([2]float64{0, 200}, [2]float64{tt.bearing, 200}, [2]float64{tt.bearing, 200}))
			require.Len(t, ins, 3)
			assert.Equal(t, tt.typ, ins[1].Type)
			assert.Equal(t, tt.text, ins[1].Text)
			assert.Equal(t, tt.severity, ins[1].Severity)
		})
	}
}

func TestGenerate_SmallBendIsStraight(t *testing.T) {
	ins := Generate(path([2]float64{0, 200}, [2]float64{20, 200}, [2]float64{5, 200}))
	require.Len(t, ins, 1)
	assert.Equal(t, Finish, ins[0].Type)
}

func TestGenerate_ConsecutiveTurnsHaveNoStraightBetween(t *testing.T) {
	// a zig-zag where every interior vertex is a turn
	ins := Generate(path([2]float64{0, 100}, [2]float64{90, 100}, [2]float64{0, 100}, [2]float64{90, 100}))
	require.NoError(t, Validate(ins, 5))
	types := make([]Type, len(ins))
	for i, in := range ins {
		types[i] = in.Type
	}
	assert.Equal(t, []Type{Straight, Normal, Normal, Normal, Finish}, types)
}

func TestGenerate_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.Intn(40)
		legs := make([][2]float64, n-1)
		for i := range legs {
			legs[i] = [2]float64{rng.Float64() * 360, 20 + rng.Float64()*200}
		}
		pl := path(legs...)
		ins := Generate(pl)
		require.NoError(t, Validate(ins, len(pl)), "trial %d", trial)

		finishes := 0
		for _, in := range ins {
			if in.Type == Finish {
				finishes++
			}
		}
		assert.Equal(t, 1, finishes)
		assert.Equal(t, Finish, ins[len(ins)-1].Type)
	}
}

func TestFormat(t *testing.T) {
	right := Instruction{Text: "Turn right", Type: Normal, Interval: [2]int{3, 4}}
	straight := Instruction{Text: TextStraight, Type: Straight, Interval: [2]int{0, 3}}
	finish := Instruction{Text: TextFinishLeg, Type: Finish, Interval: [2]int{4, 9}}

	tests := []struct {
		name     string
		in       Instruction
		distance float64
		expected string
	}{
		{"rounded to 10", right, 123, "In 120m, turn right"},
		{"rounds half up", right, 15, "In 20m, turn right"},
		{"exactly 10", right, 10, "In 10m, turn right"},
		{"under 10 is bare", right, 9.9, "Turn right"},
		{"straight never prefixed", straight, 250, TextStraight},
		{"finish never prefixed", finish, 250, TextFinishLeg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Format(tt.in, tt.distance)
			assert.Equal(t, tt.expected, out.Text)
			assert.Equal(t, tt.distance, out.DistanceToTurn)
			assert.Equal(t, tt.in.Interval, out.Interval)
		})
	}
	assert.Equal(t, "Turn right", right.Text, "input is not modified")
}

func TestReturnToRoute(t *testing.T) {
	w := ReturnToRoute()
	assert.Equal(t, Warning, w.Type)
	assert.Equal(t, High, w.Severity)
	assert.Equal(t, TextReturnToRoute, w.Text)
}

func TestValidate_Rejects(t *testing.T) {
	good := []Instruction{
		{Type: Straight, Interval: [2]int{0, 2}},
		{Type: Normal, Interval: [2]int{2, 3}},
		{Type: Finish, Interval: [2]int{3, 5}},
	}
	require.NoError(t, Validate(good, 6))

	tests := []struct {
		name string
		ins  []Instruction
		n    int
	}{
		{"empty", nil, 6},
		{"short route", good, 1},
		{"does not start at 0", []Instruction{{Type: Finish, Interval: [2]int{1, 5}}}, 6},
		{"gap", []Instruction{{Type: Straight, Interval: [2]int{0, 2}}, {Type: Finish, Interval: [2]int{3, 5}}}, 6},
		{"no finish", []Instruction{{Type: Straight, Interval: [2]int{0, 5}}}, 6},
		{"finish not last", []Instruction{{Type: Finish, Interval: [2]int{0, 2}}, {Type: Finish, Interval: [2]int{2, 5}}}, 6},
		{"does not reach end", good, 7},
		{"reversed", []Instruction{{Type: Finish, Interval: [2]int{0, 5}}, {Type: Finish, Interval: [2]int{5, 4}}}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(tt.ins, tt.n))
		})
	}
}

func TestFromProvider(t *testing.T) {
	in := []providers.ProviderInstruction{
		{Text: "Continue onto Orchard Road", StreetName: "Orchard Road", Interval: [2]int{0, 4}, Sign: 0},
		{Text: "Turn sharp left", Interval: [2]int{4, 6}, Sign: -3},
		{Text: "Keep right", Interval: [2]int{6, 7}, Sign: 7},
		{Text: "Arrive at destination", Interval: [2]int{7, 7}, Sign: 4},
	}
	out := FromProvider(in)
	require.Len(t, out, 4)
	assert.Equal(t, Straight, out[0].Type)
	assert.Equal(t, "Orchard Road", out[0].StreetName)
	assert.Equal(t, Sharp, out[1].Type)
	assert.Equal(t, Slight, out[2].Type)
	assert.Equal(t, Finish, out[3].Type)
	assert.Equal(t, [2]int{7, 7}, out[3].Interval)
}
