// Package graphhopper implements providers.RoutingProvider on top of the
// GraphHopper Routing API.
//
// Plain queries use GET /route with repeated point parameters. Queries that
// carry sheltered areas are sent as a POST body with a custom model that
// multiplies the priority of edges inside the areas and outside them, which
// requires the flexible (non contraction hierarchies) mode.
package graphhopper
