package models

import "github.com/paulmach/orb"

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Longitude float64 // Longitude of the geographical point.
	Latitude  float64 // Latitude of the geographical point.
}

// Point returns the coordinates as an orb point, longitude first.
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}
