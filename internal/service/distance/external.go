package distance

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ExternalProvider берет расстояние по дорогам из внешнего сервиса
// Ошибки не подменяются локальным расчетом
type ExternalProvider struct {
	client  DistanceMatrixClient
	timeout time.Duration
}

// NewExternalProvider создает внешнюю стратегию
// timeout ограничивает один вызов независимо от таймаута HTTP клиента
func NewExternalProvider(client DistanceMatrixClient, timeout time.Duration) *ExternalProvider {
	return &ExternalProvider{
		client:  client,
		timeout: timeout,
	}
}

// Configured сообщает, задан ли ключ внешнего сервиса
func (p *ExternalProvider) Configured() bool {
	return p.client != nil && p.client.HasAPIKey()
}

func (p *ExternalProvider) Distance(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	if !p.Configured() {
		return 0, fmt.Errorf("%w: distance matrix api key is not configured", ErrDistanceUnavailable)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	meters, err := p.client.GetDistance(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDistanceUnavailable, err)
	}

	return meters, nil
}
