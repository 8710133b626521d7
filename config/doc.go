// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Guidance and search thresholds are optional; anything left at zero falls
// back to the defaults of the tracking and search packages. Secrets may be
// supplied through GRAPHHOPPER_API_KEY and SHELTER_TOKEN instead of the file.
package config
