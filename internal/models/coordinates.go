package models

// Coordinates represents a geographical point in WGS84 decimal degrees.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point.
	Longitude float64 // Longitude of the geographical point.
}
