package instructions

import (
	"github.com/theoremus-urban-solutions/runroute/providers"
)

// GraphHopper turn sign codes.
const (
	signUTurnUnknown = -98
	signUTurnLeft    = -8
	signKeepLeft     = -7
	signSharpLeft    = -3
	signLeft         = -2
	signSlightLeft   = -1
	signContinue     = 0
	signSlightRight  = 1
	signRight        = 2
	signSharpRight   = 3
	signFinish       = 4
	signVia          = 5
	signRoundabout   = 6
	signKeepRight    = 7
	signUTurnRight   = 8
)

// FromProvider converts provider-native instructions into the stored form kept
// with a selected route. Live guidance uses Generate instead.
func FromProvider(in []providers.ProviderInstruction) []Instruction {
	out := make([]Instruction, 0, len(in))
	for _, pi := range in {
		typ := typeForSign(pi.Sign)
		out = append(out, Instruction{
			Text:       pi.Text,
			Type:       typ,
			Interval:   pi.Interval,
			StreetName: pi.StreetName,
			Severity:   SeverityOf(typ),
		})
	}
	return out
}

func typeForSign(sign int) Type {
	switch sign {
	case signUTurnUnknown, signUTurnLeft, signUTurnRight:
		return UTurn
	case signSharpLeft, signSharpRight:
		return Sharp
	case signLeft, signRight, signRoundabout:
		return Normal
	case signSlightLeft, signSlightRight, signKeepLeft, signKeepRight:
		return Slight
	case signFinish:
		return Finish
	case signContinue, signVia:
		return Straight
	default:
		return Straight
	}
}
