// Package geo provides the geometry primitives used by route matching and search.
//
// This package handles:
// - Great-circle (haversine) distance between WGS84 points
// - Initial bearing and signed bearing deltas between headings
// - Clamped projection of a point onto a segment
// - Encoded polyline conversion and orb interop
//
// All functions are pure. GeoPoint and Polyline are plain values and are never
// mutated once a run starts.
package geo
