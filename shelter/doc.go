// Package shelter implements providers.ShelterProvider against the route
// planner backend, which knows where covered walkways are.
//
// Two endpoints are used: nearby-shelters returns covered walkway polygons
// within a radius of a point, and intersections returns the parts of a route
// that run under cover together with their length.
package shelter
