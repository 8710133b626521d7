package shelter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
)

// DefaultTimeout bounds a single shelter request.
const DefaultTimeout = 15 * time.Second

// Client talks to the shelter backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the backend at baseURL. token is sent as a
// bearer token when non-empty.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "shelter")
	return c
}

type nearbyRequest struct {
	BufferDistance float64    `json:"bufferDistance"`
	Point          [2]float64 `json:"point"`
}

type nearbyShelter struct {
	CoveredLinkway *geojson.Geometry `json:"coveredlinkway"`
}

// NearbyShelters returns the covered walkways within buffer meters of center,
// flattened into one multipolygon.
func (c *Client) NearbyShelters(ctx context.Context, center geo.GeoPoint, buffer float64) (orb.MultiPolygon, error) {
	var resp []nearbyShelter
	req := nearbyRequest{BufferDistance: buffer, Point: [2]float64{center.Latitude, center.Longitude}}
	if err := c.post(ctx, "/routes/nearby-shelters", req, &resp); err != nil {
		return nil, err
	}

	var out orb.MultiPolygon
	for _, s := range resp {
		if s.CoveredLinkway == nil {
			continue
		}
		switch g := s.CoveredLinkway.Coordinates.(type) {
		case orb.Polygon:
			out = append(out, g)
		case orb.MultiPolygon:
			out = append(out, g...)
		default:
			c.logger.Debug("skipping non-polygon shelter", "type", s.CoveredLinkway.Type)
		}
	}
	c.logger.Debug("nearby shelters", "buffer", buffer, "polygons", len(out))
	return out, nil
}

type intersectionRequest struct {
	Route [][]float64 `json:"route"`
}

type intersection struct {
	Route             [][]float64 `json:"route"`
	ShelteredDistance float64     `json:"sheltered_distance"`
}

// Intersections returns the sheltered parts of pl.
func (c *Client) Intersections(ctx context.Context, pl geo.Polyline) ([]providers.ShelteredSegment, error) {
	var resp []intersection
	if err := c.post(ctx, "/routes/intersections", intersectionRequest{Route: pl.Pairs()}, &resp); err != nil {
		return nil, err
	}

	out := make([]providers.ShelteredSegment, 0, len(resp))
	for i, in := range resp {
		path, err := geo.PolylineFromPairs(in.Route)
		if err != nil {
			return nil, fmt.Errorf("intersection %d: %w", i, err)
		}
		out = append(out, providers.ShelteredSegment{Path: path, Distance: in.ShelteredDistance})
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := providers.CheckResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
