package config

import (
	"time"

	"github.com/theoremus-urban-solutions/runroute/search"
	"github.com/theoremus-urban-solutions/runroute/tracking"
)

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GraphHopperConfig contains routing provider configuration
type GraphHopperConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey    string `yaml:"apiKey"`
	Profile   string `yaml:"profile"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ShelterConfig contains shelter backend configuration. An empty BaseURL
// disables sheltered search.
type ShelterConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	Token     string `yaml:"token"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// TrackingConfig contains live guidance thresholds
type TrackingConfig struct {
	AccuracyThreshold     float64 `yaml:"accuracyThreshold" validate:"gte=0"`
	MaxSpeed              float64 `yaml:"maxSpeed" validate:"gte=0"`
	OffRouteThreshold     float64 `yaml:"offRouteThreshold" validate:"gte=0"`
	CorridorWidth         float64 `yaml:"corridorWidth" validate:"gte=0"`
	MinDistance           float64 `yaml:"minDistance" validate:"gte=0"`
	CompletionPercent     float64 `yaml:"completionPercent" validate:"gte=0,lte=100"`
	MinCompletionDistance float64 `yaml:"minCompletionDistance" validate:"gte=0"`
	HeadingWeight         float64 `yaml:"headingWeight" validate:"gte=0"`
	ProjectionMinGap      float64 `yaml:"projectionMinGap" validate:"gte=0"`
	StartProximity        float64 `yaml:"startProximity" validate:"gte=0"`
}

// SearchConfig contains candidate route search limits
type SearchConfig struct {
	Tolerance            float64 `yaml:"tolerance" validate:"gte=0"`
	Slots                int     `yaml:"slots" validate:"gte=0"`
	MaxShelterIterations int     `yaml:"maxShelterIterations" validate:"gte=0"`
	BufferShrink         float64 `yaml:"bufferShrink" validate:"gte=0,lt=1"`
	BufferFloor          float64 `yaml:"bufferFloor" validate:"gte=0"`
	InitialBuffer        float64 `yaml:"initialBuffer" validate:"gte=0"`
	MaxAttempts          int     `yaml:"maxAttempts" validate:"gte=0"`
	PerturbationLimit    int     `yaml:"perturbationLimit" validate:"gte=0"`
	MaxLandmarkAttempts  int     `yaml:"maxLandmarkAttempts" validate:"gte=0"`
	ShelteredPriority    float64 `yaml:"shelteredPriority" validate:"gte=0"`
	UnshelteredPriority  float64 `yaml:"unshelteredPriority" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server      ServerConfig      `yaml:"server" validate:"required"`
	GraphHopper GraphHopperConfig `yaml:"graphhopper"`
	Shelter     ShelterConfig     `yaml:"shelter"`
	Tracking    TrackingConfig    `yaml:"tracking"`
	Search      SearchConfig      `yaml:"search"`
}

// Timeout returns the request timeout, zero when unset.
func (c GraphHopperConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Timeout returns the request timeout, zero when unset.
func (c ShelterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ToTracker maps the section onto tracking.Config.
func (c TrackingConfig) ToTracker() tracking.Config {
	return tracking.Config{
		AccuracyThreshold:     c.AccuracyThreshold,
		MaxSpeed:              c.MaxSpeed,
		OffRouteThreshold:     c.OffRouteThreshold,
		CorridorWidth:         c.CorridorWidth,
		MinDistance:           c.MinDistance,
		CompletionPercent:     c.CompletionPercent,
		MinCompletionDistance: c.MinCompletionDistance,
		HeadingWeight:         c.HeadingWeight,
		ProjectionMinGap:      c.ProjectionMinGap,
		StartProximity:        c.StartProximity,
	}
}

// ToSearch maps the section onto search.Config. profile comes from the
// routing provider section.
func (c SearchConfig) ToSearch(profile string) search.Config {
	return search.Config{
		Tolerance:            c.Tolerance,
		Slots:                c.Slots,
		MaxShelterIterations: c.MaxShelterIterations,
		BufferShrink:         c.BufferShrink,
		BufferFloor:          c.BufferFloor,
		InitialBuffer:        c.InitialBuffer,
		MaxAttempts:          c.MaxAttempts,
		PerturbationLimit:    c.PerturbationLimit,
		MaxLandmarkAttempts:  c.MaxLandmarkAttempts,
		ShelteredPriority:    c.ShelteredPriority,
		UnshelteredPriority:  c.UnshelteredPriority,
		Profile:              profile,
	}
}
