package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByWorkshop(ctx context.Context, workshopID int64) ([]*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// WorkshopRepository интерфейс справочника мастерских
type WorkshopRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Workshop, error)
}

// CarRepository интерфейс справочника машин
type CarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
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
