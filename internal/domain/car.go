package domain

// Car represents a vehicle requesting service, located at its last known position
type Car struct {
	ID        int64
	Latitude  float64
	Longitude float64
}

// Location returns the car's coordinates
func (c *Car) Location() Coordinates {
	return Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}
