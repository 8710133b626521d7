/*
Package route builds the precomputed index a run is matched against.

An Index is derived once from the selected polyline and stays immutable for the
whole run. It holds per-segment lengths and bearings plus cumulative distances,
and answers nearest-segment projections for live position samples.

# Basic Usage

	idx, err := route.Build(polyline)
	if err != nil {
	    var invalid *route.InvalidRouteError
	    if errors.As(err, &invalid) {
	        // fewer than two points or bad coordinates
	    }
	}

	proj := idx.Project(position, heading, 0.05)
	along := idx.DistanceAlong(proj)
	progress := 100 * along / idx.TotalDistance

# Caching

Indexes can be stored with gob and reloaded without recomputing geometry:

	if err := route.SerializeIndexToFile(idx, "/cache/route.gob"); err != nil {
	    // handle error
	}
	idx, err := route.DeserializeIndexFromFile("/cache/route.gob")

Project is O(N) in the number of route points. N is the point count of a
generated running route (tens to low hundreds) and samples arrive at about 1 Hz.
*/
package route
