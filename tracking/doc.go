// Package tracking provides live guidance of a runner along a fixed route.
//
// This package handles:
// - Filtering noisy GPS samples at an accuracy and speed gate
// - Projecting each accepted sample onto the route index
// - Maintaining progress, completed path and distance traveled, all non-decreasing
// - Detecting off-route conditions and freezing progress while they last
// - Selecting the active turn instruction, never moving backwards
// - Firing the completion event exactly once
//
// A Tracker owns a single State and is not safe for concurrent use. Session runs
// the position and heading streams through one loop so every sample is processed
// against the latest committed state.
package tracking
