package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/route"
)

const routeGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>loop</name><trkseg>
    <trkpt lat="1.300" lon="103.800"></trkpt>
    <trkpt lat="1.302" lon="103.800"></trkpt>
    <trkpt lat="1.302" lon="103.802"></trkpt>
  </trkseg></trk>
</gpx>`

func TestParseLatLng(t *testing.T) {
	p, err := parseLatLng(" 1.31, 103.82")
	require.NoError(t, err)
	assert.Equal(t, geo.GeoPoint{Latitude: 1.31, Longitude: 103.82}, p)

	for _, bad := range []string{"", "1.3", "a,103.8", "1.3,b", "1,2,3"} {
		_, err := parseLatLng(bad)
		assert.Error(t, err, bad)
	}
}

func TestRunPlan_CachesIndex(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "loop.gpx")
	require.NoError(t, os.WriteFile(src, []byte(routeGPX), 0o644))
	out := filepath.Join(dir, "loop.gob")

	require.NoError(t, runPlan(context.Background(), src, out))

	idx, err := route.DeserializeIndexFromFile(out)
	require.NoError(t, err)
	assert.Len(t, idx.Points, 3)
	assert.InDelta(t, 444.7, idx.TotalDistance, 2)
}

func TestFetcher_RouteFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loop.gpx" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(routeGPX))
	}))
	defer server.Close()

	f := newFetcher()
	idx, err := f.route(context.Background(), server.URL+"/loop.gpx")
	require.NoError(t, err)
	assert.Equal(t, 2, idx.SegmentCount())

	_, err = f.route(context.Background(), server.URL+"/missing.gpx")
	assert.Error(t, err)

	_, err = f.route(context.Background(), "")
	assert.Error(t, err)
}
