package tracking

// Config holds the guidance thresholds. Zero values are replaced by the defaults.
type Config struct {
	// AccuracyThreshold rejects samples whose reported accuracy (m) is worse.
	AccuracyThreshold float64
	// MaxSpeed rejects samples faster than this (m/s); filters GPS jumps.
	MaxSpeed float64
	// OffRouteThreshold is the distance from the route (m) beyond which the runner is off route.
	OffRouteThreshold float64
	// CorridorWidth is the distance from the route (m) within which progress advances.
	CorridorWidth float64
	// MinDistance is the smallest displacement (m) added to the distance traveled.
	MinDistance float64
	// CompletionPercent is the progress at which the run can finish. Inclusive:
	// a run finishes once progress reaches it and MinCompletionDistance is met.
	CompletionPercent float64
	// MinCompletionDistance is the distance traveled (m) required to finish, inclusive.
	MinCompletionDistance float64
	// HeadingWeight scales heading difference (deg) into projection cost (m).
	HeadingWeight float64
	// ProjectionMinGap is the distance (m) the projected point must be from the last
	// completed vertex before it is appended to the completed path.
	ProjectionMinGap float64
	// StartProximity is how close (m) to the route start a run may begin.
	StartProximity float64
}

// DefaultConfig returns the thresholds the guidance engine was tuned with.
func DefaultConfig() Config {
	return Config{
		AccuracyThreshold:     50,
		MaxSpeed:              20,
		OffRouteThreshold:     20,
		CorridorWidth:         30,
		MinDistance:           1,
		CompletionPercent:     98,
		MinCompletionDistance: 100,
		HeadingWeight:         0.05,
		ProjectionMinGap:      1,
		StartProximity:        100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AccuracyThreshold <= 0 {
		c.AccuracyThreshold = d.AccuracyThreshold
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = d.MaxSpeed
	}
	if c.OffRouteThreshold <= 0 {
		c.OffRouteThreshold = d.OffRouteThreshold
	}
	if c.CorridorWidth <= 0 {
		c.CorridorWidth = d.CorridorWidth
	}
	if c.MinDistance <= 0 {
		c.MinDistance = d.MinDistance
	}
	if c.CompletionPercent <= 0 {
		c.CompletionPercent = d.CompletionPercent
	}
	if c.MinCompletionDistance <= 0 {
		c.MinCompletionDistance = d.MinCompletionDistance
	}
	if c.HeadingWeight <= 0 {
		c.HeadingWeight = d.HeadingWeight
	}
	if c.ProjectionMinGap <= 0 {
		c.ProjectionMinGap = d.ProjectionMinGap
	}
	if c.StartProximity <= 0 {
		c.StartProximity = d.StartProximity
	}
	return c
}
