package runroute

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/runroute/utils"
)

type healthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	ShelteredSearch   bool   `json:"sheltered_search"`
	RoutingConfigured bool   `json:"routing_configured"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:            "ok",
		Timestamp:         utils.Iso8601(s.now()),
		ShelteredSearch:   s.shelter != nil,
		RoutingConfigured: s.routing != nil,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
