// Package instructions derives turn-by-turn guidance from route geometry.
//
// Generate walks the interior vertices of a polyline and classifies each change of
// bearing. The resulting list partitions the route's point indices into contiguous
// intervals and always ends with exactly one finish instruction.
package instructions
