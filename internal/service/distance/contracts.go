package distance

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Provider стратегия расчета расстояния между двумя точками (в метрах)
type Provider interface {
	Distance(ctx context.Context, from, to domain.Coordinates) (float64, error)
}

// DistanceMatrixClient интерфейс клиента внешнего сервиса расстояний
type DistanceMatrixClient interface {
	HasAPIKey() bool
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (float64, error)
}
