package graphhopper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
)

var testLine = geo.Polyline{
	{Latitude: 1.3, Longitude: 103.8},
	{Latitude: 1.301, Longitude: 103.8},
	{Latitude: 1.301, Longitude: 103.801},
}

func routeJSON(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"paths": []map[string]any{{
			"distance": 5012.4,
			"points":   geo.EncodePolyline(testLine),
			"instructions": []map[string]any{
				{"text": "Continue onto Orchard Road", "street_name": "Orchard Road", "interval": []int{0, 1}, "distance": 111.2, "sign": 0},
				{"text": "Turn right", "interval": []int{1, 2}, "distance": 111.2, "sign": 2},
				{"text": "Arrive at destination", "interval": []int{2, 2}, "distance": 0, "sign": 4},
			},
		}},
	})
	require.NoError(t, err)
	return body
}

func TestRoute_RoundTripUsesGet(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(routeJSON(t))
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret")
	path, err := c.Route(context.Background(), providers.RouteRequest{
		Points:    []geo.GeoPoint{{Latitude: 1.3, Longitude: 103.8}},
		Profile:   "foot",
		RoundTrip: &providers.RoundTrip{Distance: 5000, Seed: 42},
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/route", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, []string{"1.3,103.8"}, q["point"])
	assert.Equal(t, "foot", q.Get("profile"))
	assert.Equal(t, "secret", q.Get("key"))
	assert.Equal(t, "round_trip", q.Get("algorithm"))
	assert.Equal(t, "5000", q.Get("round_trip.distance"))
	assert.Equal(t, "42", q.Get("round_trip.seed"))

	assert.Equal(t, 5012.4, path.Distance)
	require.Len(t, path.Polyline, 3)
	assert.InDelta(t, 1.301, path.Polyline[2].Latitude, 1e-5)
	assert.InDelta(t, 103.801, path.Polyline[2].Longitude, 1e-5)
	require.Len(t, path.Instructions, 3)
	assert.Equal(t, "Orchard Road", path.Instructions[0].StreetName)
	assert.Equal(t, 2, path.Instructions[1].Sign)
	assert.Equal(t, [2]int{1, 2}, path.Instructions[1].Interval)
}

func TestRoute_WaypointsKeepOrder(t *testing.T) {
	var points []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		points = r.URL.Query()["point"]
		_, _ = w.Write(routeJSON(t))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.Route(context.Background(), providers.RouteRequest{
		Points:  []geo.GeoPoint{{Latitude: 1.3, Longitude: 103.8}, {Latitude: 1.31, Longitude: 103.82}, {Latitude: 1.3, Longitude: 103.8}},
		Profile: "foot",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.3,103.8", "1.31,103.82", "1.3,103.8"}, points)
}

func TestRoute_AreasUsePostWithCustomModel(t *testing.T) {
	var (
		method string
		key    string
		body   map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		key = r.URL.Query().Get("key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write(routeJSON(t))
	}))
	defer server.Close()

	areas := orb.MultiPolygon{{{{103.80, 1.30}, {103.81, 1.30}, {103.81, 1.31}, {103.80, 1.30}}}}
	c := NewClient(server.URL, "secret")
	_, err := c.Route(context.Background(), providers.RouteRequest{
		Points:          []geo.GeoPoint{{Latitude: 1.3, Longitude: 103.8}},
		Profile:         "foot",
		RoundTrip:       &providers.RoundTrip{Distance: 5000, Seed: 0},
		Areas:           areas,
		InsidePriority:  1.0,
		OutsidePriority: 0.1,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "secret", key)
	assert.Equal(t, "foot", body["profile"])
	assert.Equal(t, true, body["ch.disable"])
	assert.Equal(t, "round_trip", body["algorithm"])
	assert.Equal(t, 5000.0, body["round_trip.distance"])
	assert.Equal(t, 0.0, body["round_trip.seed"], "seed zero is still sent")
	assert.Equal(t, []any{[]any{103.8, 1.3}}, body["points"])

	model := body["custom_model"].(map[string]any)
	assert.Equal(t, []any{
		map[string]any{"if": "in_sheltered_area", "multiply_by": "1.0"},
		map[string]any{"else": "", "multiply_by": "0.1"},
	}, model["priority"])

	fc := model["areas"].(map[string]any)
	assert.Equal(t, "FeatureCollection", fc["type"])
	features := fc["features"].([]any)
	require.Len(t, features, 1)
	feature := features[0].(map[string]any)
	assert.Equal(t, AreaID, feature["id"])
	assert.Equal(t, "MultiPolygon", feature["geometry"].(map[string]any)["type"])
}

func TestRoute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "http error hides key",
			status: http.StatusTooManyRequests,
			body:   `{"message":"API limit reached"}`,
			checkFn: func(t *testing.T, err error) {
				var httpErr *providers.HTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, 429, httpErr.StatusCode)
				assert.True(t, httpErr.Temporary())
				assert.Contains(t, httpErr.Body, "API limit reached")
				assert.NotContains(t, httpErr.URL, "secret")
			},
		},
		{
			name:   "no paths",
			status: http.StatusOK,
			body:   `{"paths":[],"message":"Cannot find point 0"}`,
			checkFn: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "Cannot find point 0")
			},
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{"paths":`,
			checkFn: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to decode")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, "secret")
			_, err := c.Route(context.Background(), providers.RouteRequest{
				Points:  []geo.GeoPoint{{Latitude: 1.3, Longitude: 103.8}},
				Profile: "foot",
			})
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}

func TestRoute_TransportErrorHidesKey(t *testing.T) {
	tests := []struct {
		name  string
		areas orb.MultiPolygon
	}{
		{name: "get"},
		{name: "post", areas: orb.MultiPolygon{{{{103.80, 1.30}, {103.81, 1.30}, {103.81, 1.31}, {103.80, 1.30}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("http://127.0.0.1:1", "SECRETKEY123")
			_, err := c.Route(context.Background(), providers.RouteRequest{
				Points:    []geo.GeoPoint{{Latitude: 1.3, Longitude: 103.8}},
				Profile:   "foot",
				RoundTrip: &providers.RoundTrip{Distance: 5000, Seed: 1},
				Areas:     tt.areas,
			})
			require.Error(t, err)
			assert.NotContains(t, err.Error(), "SECRETKEY123")
			assert.Contains(t, err.Error(), "REDACTED")
		})
	}
}

func TestRoute_NoPoints(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "")
	_, err := c.Route(context.Background(), providers.RouteRequest{Profile: "foot"})
	assert.Error(t, err)
}

func TestDecodePoints_GeoJSON(t *testing.T) {
	raw := json.RawMessage(`{"type":"LineString","coordinates":[[103.8,1.3],[103.8,1.301]]}`)
	pl, err := decodePoints(raw)
	require.NoError(t, err)
	assert.Equal(t, geo.Polyline{{Latitude: 1.3, Longitude: 103.8}, {Latitude: 1.301, Longitude: 103.8}}, pl)

	_, err = decodePoints(json.RawMessage(`{"type":"Point","coordinates":[103.8,1.3]}`))
	assert.Error(t, err)
}
