/*
Package runroute serves running-route search and planning over HTTP.

Routes:

	GET  /api/health              liveness and configured providers
	POST /api/routes/search       candidate routes for a start point and distance
	POST /api/routes/instructions planned turn-by-turn guidance for a polyline
	POST /api/routes/gpx          a polyline exported as GPX

A search body looks like:

	{"start": {"latitude": 1.3, "longitude": 103.8}, "distance": 5000,
	 "landmark": {"latitude": 1.31, "longitude": 103.8}, "sheltered": false}

Add ?format=gpx to the search URL to receive the candidates as GPX tracks.
Errors are returned as {"errorCondition": {"status": ..., "description": ...}}.

# Basic Usage

	srv := runroute.NewServer(cfg, graphhopper.NewClient(url, key), nil)
	srv.StartServer()
	srv.HandleGracefulShutdown()
*/
package runroute
