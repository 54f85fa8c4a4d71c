package distance

import (
	"context"
	"math"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// EarthRadiusMeters средний радиус Земли
const EarthRadiusMeters = 6371000.0

// Haversine расстояние по дуге большого круга в метрах
func Haversine(from, to domain.Coordinates) float64 {
	lat1 := degreesToRadians(from.Latitude)
	lon1 := degreesToRadians(from.Longitude)
	lat2 := degreesToRadians(to.Latitude)
	lon2 := degreesToRadians(to.Longitude)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	// Погрешность округления может дать a чуть больше 1
	a = math.Min(1, a)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * EarthRadiusMeters
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// LocalProvider считает расстояние по формуле гаверсинусов, без сети
type LocalProvider struct{}

// NewLocalProvider создает локальную стратегию
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (p *LocalProvider) Distance(_ context.Context, from, to domain.Coordinates) (float64, error) {
	return Haversine(from, to), nil
}
