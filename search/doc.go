/*
Package search finds candidate running routes of a requested length.

A Searcher asks a routing provider for paths until their distance falls within
a tolerance of the target, and keeps up to three of them. Four modes exist:

  - round trip: a fresh random seed per attempt, first match per slot wins
  - sheltered round trip: routing prefers sheltered areas fetched around the
    start; ten routes are generated and the three with the most sheltered
    distance are kept
  - landmark: the route passes a landmark, either out and back or as a
    triangle through an intermediate point
  - sheltered landmark: the landmark route biased towards sheltered areas

Every retry loop is bounded. A search that runs out of attempts returns
*ExhaustedError; one whose providers keep failing returns
*ProviderUnavailableError.

# Basic Usage

	s := search.New(ghClient, shelterClient, search.DefaultConfig())
	set, err := s.Search(ctx, search.Request{
	    Start:  geo.GeoPoint{Latitude: 1.3, Longitude: 103.8},
	    Target: 5000,
	})

Provider calls are made one after the other. A Searcher is not safe for
concurrent use because it owns its random source.
*/
package search
