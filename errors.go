package runroute

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/runroute/route"
	"github.com/theoremus-urban-solutions/runroute/search"
)

// RequestError is a malformed or semantically invalid client request.
type RequestError struct{ Msg string }

func (e *RequestError) Error() string { return e.Msg }

type errorCondition struct {
	Status      int    `json:"status"`
	Description string `json:"description"`
}

type errorPayload struct {
	ResponseTimestamp string         `json:"responseTimestamp"`
	ErrorCondition    errorCondition `json:"errorCondition"`
}

func buildErrorPayload(ts string, status int, msg string) []byte {
	b, _ := json.Marshal(errorPayload{
		ResponseTimestamp: ts,
		ErrorCondition:    errorCondition{Status: status, Description: msg},
	})
	return b
}

// statusFor maps an error to the HTTP status returned to the client.
func statusFor(err error) int {
	var (
		reqErr      *RequestError
		validErrs   validator.ValidationErrors
		routeErr    *route.InvalidRouteError
		exhausted   *search.ExhaustedError
		unavailable *search.ProviderUnavailableError
	)
	switch {
	case errors.As(err, &reqErr), errors.As(err, &validErrs), errors.As(err, &routeErr):
		return http.StatusBadRequest
	case errors.As(err, &exhausted):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(s.timestamp(), status, err.Error()))
}
