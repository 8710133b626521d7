// Package formatter provides response wrapping and serialization for routes,
// instructions and completed runs.
//
// This package is organized into:
// - wrapper.go: response views with a timestamp and display-ready fields
// - json.go: JSON serialization
// - gpx.go: GPX 1.1 export of routes and runs
package formatter
