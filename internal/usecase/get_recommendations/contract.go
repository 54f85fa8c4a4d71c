package get_recommendations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/distance"
)

// WorkshopRepository интерфейс справочника мастерских
type WorkshopRepository interface {
	ListAll(ctx context.Context) ([]*domain.Workshop, error)
}

// CarRepository интерфейс справочника машин
type CarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListEndingOnOrAfter(ctx context.Context, since time.Time) ([]*domain.Appointment, error)
}

// DistanceSelector выбирает стратегию расчета расстояния по режиму запроса
type DistanceSelector interface {
	Select(mode string) (distance.Provider, string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
