package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/runroute/providers"
	"github.com/theoremus-urban-solutions/runroute/replay"
	"github.com/theoremus-urban-solutions/runroute/route"
)

// fetcher loads routes and recorded tracks from URLs or local files.
// This is CLI-specific logic and is not part of the core library.
type fetcher struct {
	httpClient *http.Client
}

func newFetcher() *fetcher {
	return &fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// fetch downloads url and returns the raw body.
func (f *fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := providers.CheckResponse(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// route loads a GPX route or a cached .gob index.
func (f *fetcher) route(ctx context.Context, src string) (*route.Index, error) {
	if src == "" {
		return nil, fmt.Errorf("no route given, use -route")
	}
	if !isURL(src) {
		return replay.LoadRoute(src)
	}
	data, err := f.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(path.Ext(src), ".gob") {
		return route.DeserializeIndex(data)
	}
	return replay.RouteFromGPX(bytes.NewReader(data))
}

// track loads a recorded GPX track as location samples.
func (f *fetcher) track(ctx context.Context, src string) ([]providers.Sample, error) {
	if src == "" {
		return nil, fmt.Errorf("no track given, use -track")
	}
	if !isURL(src) {
		return replay.LoadTrackFile(src)
	}
	data, err := f.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	return replay.LoadTrack(bytes.NewReader(data))
}
