package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKilometers(t *testing.T) {
	assert.Equal(t, "5.01", Kilometers(5012.4))
	assert.Equal(t, "0.00", Kilometers(0))
}

func TestPresentableDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{-5, "0 m"},
		{math.NaN(), "0 m"},
		{120.4, "120 m"},
		{999.4, "999 m"},
		{1000, "1.0 km"},
		{5049, "5.0 km"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PresentableDistance(tt.meters))
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, "0%", Progress(-3))
	assert.Equal(t, "42%", Progress(42.9))
	assert.Equal(t, "100%", Progress(104))
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 400*time.Millisecond, "01:01"},
		{75 * time.Minute, "75:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Elapsed(tt.d))
	}
}

func TestPace(t *testing.T) {
	assert.Equal(t, "0:00", Pace(0))
	assert.Equal(t, "5:30", Pace(5*time.Minute+30*time.Second))
	assert.Equal(t, "6:00", Pace(5*time.Minute+59*time.Second+600*time.Millisecond))
}

func TestIso8601(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("SGT", 8*3600))
	assert.Equal(t, "2024-03-09T15:30:00Z", Iso8601(ts))
	assert.Equal(t, "2024-03-09", Iso8601Date(ts))
}
