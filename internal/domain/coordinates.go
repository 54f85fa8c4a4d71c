package domain

import "fmt"

// Coordinates geographic position in decimal degrees
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// String formats coordinates as "lat,long" (the format expected by mapping APIs)
func (c Coordinates) String() string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}

// IsValid returns true if the coordinates are within WGS84 bounds
func (c Coordinates) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
