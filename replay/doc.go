// Package replay feeds recorded GPS tracks through the guidance engine.
//
// Tracks and routes are read from GPX files. Speed and heading are derived
// from consecutive track points because GPX does not carry them, and every
// recorded point is treated as a perfectly accurate fix.
package replay
