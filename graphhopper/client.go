package graphhopper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/providers"
)

// DefaultBaseURL is the hosted GraphHopper API.
const DefaultBaseURL = "https://graphhopper.com/api/1"

// AreaID names the sheltered area in custom models. GraphHopper exposes it to
// priority rules as "in_" + AreaID.
const AreaID = "sheltered_area"

// DefaultTimeout bounds a single routing request.
const DefaultTimeout = 30 * time.Second

// Client is a GraphHopper routing client.
type Client struct {
	baseURL    string
	apiKey     string
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

// NewClient creates a client for the API at baseURL. An empty baseURL uses
// DefaultBaseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "graphhopper")
	return c
}

// Route returns the first path GraphHopper finds for req.
func (c *Client) Route(ctx context.Context, req providers.RouteRequest) (*providers.RoutePath, error) {
	if len(req.Points) == 0 {
		return nil, errors.New("route request has no points")
	}

	var (
		httpReq *http.Request
		err     error
	)
	if len(req.Areas) > 0 {
		httpReq, err = c.postRequest(ctx, req)
	} else {
		httpReq, err = c.getRequest(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	endpoint := redact(httpReq.URL)
	c.logger.Debug("routing request", "method", httpReq.Method, "url", endpoint, "points", len(req.Points))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// the transport error repeats the raw URL, key included
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = endpoint
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := providers.CheckResponse(resp); err != nil {
		var httpErr *providers.HTTPError
		if errors.As(err, &httpErr) {
			httpErr.URL = endpoint
		}
		return nil, err
	}

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode route response: %w", err)
	}
	return body.firstPath()
}

func (c *Client) getRequest(ctx context.Context, req providers.RouteRequest) (*http.Request, error) {
	q := url.Values{}
	for _, p := range req.Points {
		q.Add("point", formatPoint(p))
	}
	q.Set("profile", req.Profile)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	if rt := req.RoundTrip; rt != nil {
		q.Set("algorithm", "round_trip")
		q.Set("round_trip.distance", strconv.FormatFloat(rt.Distance, 'f', -1, 64))
		q.Set("round_trip.seed", strconv.Itoa(rt.Seed))
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/route?"+q.Encode(), nil)
}

func (c *Client) postRequest(ctx context.Context, req providers.RouteRequest) (*http.Request, error) {
	payload, err := json.Marshal(newRouteBody(req))
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/route"
	if c.apiKey != "" {
		endpoint += "?" + url.Values{"key": {c.apiKey}}.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func formatPoint(p geo.GeoPoint) string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// redact drops the API key from u for logs and errors.
func redact(u *url.URL) string {
	c := *u
	q := c.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		c.RawQuery = q.Encode()
	}
	return c.String()
}
