package graphhopper

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
)

// routeBody is the POST /route payload.
type routeBody struct {
	Profile           string       `json:"profile"`
	Points            [][2]float64 `json:"points"`
	CHDisable         bool         `json:"ch.disable"`
	Algorithm         string       `json:"algorithm,omitempty"`
	RoundTripDistance float64      `json:"round_trip.distance,omitempty"`
	RoundTripSeed     *int         `json:"round_trip.seed,omitempty"`
	CustomModel       *customModel `json:"custom_model,omitempty"`
}

type customModel struct {
	Priority []priorityRule            `json:"priority"`
	Areas    *geojson.FeatureCollection `json:"areas"`
}

// priorityRule is either an "if" or an "else" statement; the API expects the
// empty else key to be present.
type priorityRule struct {
	If         *string `json:"if,omitempty"`
	Else       *string `json:"else,omitempty"`
	MultiplyBy string  `json:"multiply_by"`
}

func newRouteBody(req providers.RouteRequest) routeBody {
	body := routeBody{
		Profile:   req.Profile,
		Points:    make([][2]float64, len(req.Points)),
		CHDisable: true,
	}
	// GeoJSON order: longitude first.
	for i, p := range req.Points {
		body.Points[i] = [2]float64{p.Longitude, p.Latitude}
	}
	if rt := req.RoundTrip; rt != nil {
		seed := rt.Seed
		body.Algorithm = "round_trip"
		body.RoundTripDistance = rt.Distance
		body.RoundTripSeed = &seed
	}
	if len(req.Areas) > 0 {
		body.CustomModel = newCustomModel(req.Areas, req.InsidePriority, req.OutsidePriority)
	}
	return body
}

func newCustomModel(areas orb.MultiPolygon, inside, outside float64) *customModel {
	cond, empty := "in_"+AreaID, ""
	feature := geojson.NewFeature(areas)
	feature.ID = AreaID
	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	return &customModel{
		Priority: []priorityRule{
			{If: &cond, MultiplyBy: formatFactor(inside)},
			{Else: &empty, MultiplyBy: formatFactor(outside)},
		},
		Areas: fc,
	}
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

type routeResponse struct {
	Paths   []responsePath `json:"paths"`
	Message string         `json:"message"`
}

type responsePath struct {
	Distance     float64               `json:"distance"`
	Points       json.RawMessage       `json:"points"`
	Instructions []responseInstruction `json:"instructions"`
}

type responseInstruction struct {
	Text       string  `json:"text"`
	StreetName string  `json:"street_name"`
	Interval   [2]int  `json:"interval"`
	Distance   float64 `json:"distance"`
	Sign       int     `json:"sign"`
}

func (r routeResponse) firstPath() (*providers.RoutePath, error) {
	if len(r.Paths) == 0 {
		if r.Message != "" {
			return nil, fmt.Errorf("no route found: %s", r.Message)
		}
		return nil, errors.New("no route found")
	}
	p := r.Paths[0]
	pl, err := decodePoints(p.Points)
	if err != nil {
		return nil, err
	}

	out := &providers.RoutePath{Polyline: pl, Distance: p.Distance}
	for _, in := range p.Instructions {
		out.Instructions = append(out.Instructions, providers.ProviderInstruction{
			Text:       in.Text,
			StreetName: in.StreetName,
			Interval:   in.Interval,
			Distance:   in.Distance,
			Sign:       in.Sign,
		})
	}
	return out, nil
}

// decodePoints accepts both the encoded polyline string and the GeoJSON
// LineString returned when points_encoded=false.
func decodePoints(raw json.RawMessage) (geo.Polyline, error) {
	if len(raw) == 0 {
		return nil, errors.New("path has no points")
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("failed to decode points: %w", err)
		}
		return geo.DecodePolyline(encoded)
	}

	var g geojson.Geometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("failed to decode points: %w", err)
	}
	ls, ok := g.Coordinates.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("unexpected points geometry %q", g.Type)
	}
	return geo.PolylineFromOrb(ls), nil
}
