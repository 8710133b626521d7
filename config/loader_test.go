package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
server:
  port: 8080
graphhopper:
  baseURL: https://graphhopper.example.com/api/1
  apiKey: from-file
  timeoutMS: 5000
shelter:
  baseURL: https://shelter.example.com
  token: abc
tracking:
  offRouteThreshold: 25
  completionPercent: 95
search:
  tolerance: 300
  bufferShrink: 0.9
`

func TestParse(t *testing.T) {
	t.Setenv("GRAPHHOPPER_API_KEY", "")
	t.Setenv("SHELTER_TOKEN", "")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.GraphHopper.APIKey)
	assert.Equal(t, "foot", cfg.GraphHopper.Profile)
	assert.Equal(t, int64(5000), cfg.GraphHopper.Timeout().Milliseconds())
	assert.Equal(t, "abc", cfg.Shelter.Token)

	tc := cfg.Tracking.ToTracker()
	assert.Equal(t, 25.0, tc.OffRouteThreshold)
	assert.Equal(t, 95.0, tc.CompletionPercent)
	assert.Zero(t, tc.CorridorWidth, "unset values are left for the tracker defaults")

	sc := cfg.Search.ToSearch(cfg.GraphHopper.Profile)
	assert.Equal(t, 300.0, sc.Tolerance)
	assert.Equal(t, 0.9, sc.BufferShrink)
	assert.Equal(t, "foot", sc.Profile)
}

func TestParse_DefaultsAndEnv(t *testing.T) {
	t.Setenv("GRAPHHOPPER_API_KEY", "from-env")
	t.Setenv("SHELTER_TOKEN", "token-env")

	cfg, err := Parse([]byte("server: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.GraphHopper.APIKey)
	assert.Equal(t, "token-env", cfg.Shelter.Token)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "server: [\n"},
		{"negative port", "server:\n  port: -1\n"},
		{"bad url", "server:\n  port: 1\ngraphhopper:\n  baseURL: not a url\n"},
		{"shrink of one", "server:\n  port: 1\nsearch:\n  bufferShrink: 1\n"},
		{"completion over 100", "server:\n  port: 1\ntracking:\n  completionPercent: 120\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadAppConfigFrom(t *testing.T) {
	t.Setenv("GRAPHHOPPER_API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := LoadAppConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)

	_, err = LoadAppConfigFrom(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(sample), 0o600))
	t.Chdir(dir)

	require.NoError(t, LoadAppConfig())
	assert.Equal(t, 8080, Config.Server.Port)
}

func TestShippedConfigIsValid(t *testing.T) {
	t.Setenv("GRAPHHOPPER_API_KEY", "")
	cfg, err := LoadAppConfigFrom("config.yml")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Empty(t, cfg.Shelter.BaseURL)
	assert.Equal(t, 3, cfg.Search.ToSearch("foot").Slots)
	assert.Equal(t, 98.0, cfg.Tracking.ToTracker().CompletionPercent)
}
