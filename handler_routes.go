package runroute

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/runroute/formatter"
	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/route"
	"github.com/theoremus-urban-solutions/runroute/search"
	"github.com/theoremus-urban-solutions/runroute/utils"
)

var validate = validator.New()

type pointRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (p pointRequest) point() geo.GeoPoint {
	return geo.GeoPoint{Latitude: p.Latitude, Longitude: p.Longitude}
}

type searchRequest struct {
	Start *pointRequest `json:"start" validate:"required"`
	// Distance is the target route length in meters.
	Distance  float64       `json:"distance" validate:"gt=0"`
	Landmark  *pointRequest `json:"landmark,omitempty"`
	Sheltered bool          `json:"sheltered"`
	Profile   string        `json:"profile,omitempty"`
}

type polylineRequest struct {
	Name     string      `json:"name,omitempty"`
	Polyline string      `json:"polyline,omitempty" validate:"required_without=Points"`
	Points   [][]float64 `json:"points,omitempty" validate:"required_without=Polyline"`
}

func (p polylineRequest) polyline() (geo.Polyline, error) {
	if p.Polyline != "" {
		pl, err := geo.DecodePolyline(p.Polyline)
		if err != nil {
			return nil, &RequestError{Msg: err.Error()}
		}
		return pl, nil
	}
	pl, err := geo.PolylineFromPairs(p.Points)
	if err != nil {
		return nil, &RequestError{Msg: err.Error()}
	}
	return pl, nil
}

// decodeBody reads a JSON body into v and validates it.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &RequestError{Msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	return validate.Struct(v)
}

func (s *Server) timestamp() string {
	return utils.Iso8601(s.now())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Sheltered && s.shelter == nil {
		s.writeError(w, r, &RequestError{Msg: "sheltered search is not configured"})
		return
	}

	sreq := search.Request{
		Start:     req.Start.point(),
		Target:    req.Distance,
		Sheltered: req.Sheltered,
	}
	if req.Landmark != nil {
		lm := req.Landmark.point()
		sreq.Landmark = &lm
	}
	profile := s.cfg.GraphHopper.Profile
	if req.Profile != "" {
		profile = req.Profile
	}

	searcher := search.New(s.routing, s.shelter, s.cfg.Search.ToSearch(profile),
		append([]search.Option{search.WithLogger(s.logger)}, s.searchOpts...)...)
	set, err := searcher.Search(r.Context(), sreq)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "gpx") {
		buf, err := formatter.CandidateSetGPX(set)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeGPX(w, "routes.gpx", buf)
		return
	}
	buf, err := formatter.CandidateSetJSON(set, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf)
}

func (s *Server) handleInstructions(w http.ResponseWriter, r *http.Request) {
	var req polylineRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pl, err := req.polyline()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	idx, err := route.Build(pl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	buf, err := formatter.InstructionsJSON(idx, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf)
}

func (s *Server) handleGPX(w http.ResponseWriter, r *http.Request) {
	var req polylineRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pl, err := req.polyline()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := route.Build(pl); err != nil {
		s.writeError(w, r, err)
		return
	}
	name := req.Name
	if name == "" {
		name = "route"
	}
	buf, err := formatter.PolylineGPX(name, pl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeGPX(w, name+".gpx", buf)
}

func writeGPX(w http.ResponseWriter, filename string, buf []byte) {
	w.Header().Set("Content-Type", "application/gpx+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf)
}
