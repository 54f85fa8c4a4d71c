package distance

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// InstrumentedProvider считает вызовы стратегии в prometheus
type InstrumentedProvider struct {
	next     Provider
	strategy string
	metrics  *metrics.Metrics
}

// Instrument оборачивает стратегию; при m == nil возвращает её без изменений
func Instrument(next Provider, strategy string, m *metrics.Metrics) Provider {
	if m == nil {
		return next
	}
	return &InstrumentedProvider{next: next, strategy: strategy, metrics: m}
}

func (p *InstrumentedProvider) Distance(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	meters, err := p.next.Distance(ctx, from, to)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.metrics.DistanceRequestsTotal.WithLabelValues(p.strategy, outcome).Inc()
	return meters, err
}
