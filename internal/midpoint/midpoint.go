// Package midpoint computes the barycentre of a set of geographic points:
// the unweighted arithmetic mean of their coordinates.
package midpoint

import "github.com/vportier/barycentre/internal/models"

// MinPoints is the smallest set of coordinates for which a midpoint is
// defined. A meeting point between fewer than two people is meaningless.
const MinPoints = 2

// Calculate returns the arithmetic mean of the input latitudes and the
// arithmetic mean of the input longitudes, averaged independently.
//
// This is a planar average, not a spherical centroid. For points clustered
// within a continent the difference is negligible; near the antimeridian
// (±180°) or the poles the result drifts away from the geodesic centre.
// Example: (0,0), (0,90), (0,-90) averages to (0,0) even though the points
// sit on half the globe. No wrapping correction is applied.
//
// ok is false when fewer than MinPoints coordinates are given; the returned
// zero value must then be ignored.
func Calculate(coords []models.Coordinates) (models.Coordinates, bool) {
	if len(coords) < MinPoints {
		return models.Coordinates{}, false
	}

	var sumLat, sumLon float64
	for _, c := range coords {
		sumLat += c.Latitude
		sumLon += c.Longitude
	}

	n := float64(len(coords))

	return models.Coordinates{
		Latitude:  sumLat / n,
		Longitude: sumLon / n,
	}, true
}
