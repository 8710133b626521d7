package search

// Config holds the search limits. Zero values are replaced by the defaults.
type Config struct {
	// Tolerance is how far (m) a route's distance may be from the target.
	Tolerance float64
	// Slots is the number of candidates returned.
	Slots int
	// MaxShelterIterations is the number of sheltered round trips generated
	// before the best Slots are returned.
	MaxShelterIterations int
	// BufferShrink multiplies the shelter search radius after a provider failure.
	BufferShrink float64
	// BufferFloor is the radius (m) below which a sheltered search gives up.
	BufferFloor float64
	// InitialBuffer is the first shelter search radius (m). Zero means half the target.
	InitialBuffer float64
	// MaxAttempts bounds the routing requests spent on one round-trip slot.
	MaxAttempts int
	// PerturbationLimit is the number of nudges of a landmark intermediate point
	// before it is placed at random again.
	PerturbationLimit int
	// MaxLandmarkAttempts bounds the trial routes spent on one landmark slot.
	MaxLandmarkAttempts int
	// ShelteredPriority and UnshelteredPriority weight edges inside and outside
	// sheltered areas.
	ShelteredPriority   float64
	UnshelteredPriority float64
	// Profile is the routing profile name.
	Profile string
}

// DefaultConfig returns the limits route generation was tuned with.
func DefaultConfig() Config {
	return Config{
		Tolerance:            500,
		Slots:                3,
		MaxShelterIterations: 10,
		BufferShrink:         0.85,
		BufferFloor:          500,
		MaxAttempts:          50,
		PerturbationLimit:    20,
		MaxLandmarkAttempts:  200,
		ShelteredPriority:    1.0,
		UnshelteredPriority:  0.1,
		Profile:              "foot",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.Slots <= 0 {
		c.Slots = d.Slots
	}
	if c.MaxShelterIterations <= 0 {
		c.MaxShelterIterations = d.MaxShelterIterations
	}
	if c.BufferShrink <= 0 || c.BufferShrink >= 1 {
		c.BufferShrink = d.BufferShrink
	}
	if c.BufferFloor <= 0 {
		c.BufferFloor = d.BufferFloor
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.PerturbationLimit <= 0 {
		c.PerturbationLimit = d.PerturbationLimit
	}
	if c.MaxLandmarkAttempts <= 0 {
		c.MaxLandmarkAttempts = d.MaxLandmarkAttempts
	}
	if c.ShelteredPriority <= 0 {
		c.ShelteredPriority = d.ShelteredPriority
	}
	if c.UnshelteredPriority <= 0 {
		c.UnshelteredPriority = d.UnshelteredPriority
	}
	if c.Profile == "" {
		c.Profile = d.Profile
	}
	return c
}
