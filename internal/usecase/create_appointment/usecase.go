package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	carRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/car"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
)

// UseCase use case для создания записи на обслуживание
type UseCase struct {
	appointmentRepo AppointmentRepository
	workshopRepo    WorkshopRepository
	carRepo         CarRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	workshopRepo WorkshopRepository,
	carRepo CarRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		workshopRepo:    workshopRepo,
		carRepo:         carRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Чтение записей мастерской, проверка пересечения и вставка выполняются
// в транзакции READ COMMITTED под блокировкой строки мастерской
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: car=%d, workshop=%d, start=%s, end=%s",
		req.CarID, req.WorkshopID, req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))

	// 1. Время начала не должно быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateNotPast(req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 2. Машина должна существовать
	if _, err := uc.carRepo.GetByID(ctx, req.CarID); err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("CreateAppointment: car id=%d not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get car id=%d: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	interval := domain.Interval{Start: req.StartTime, End: req.EndTime}
	var result *domain.Appointment

	// 3. Проверка и вставка в критической секции мастерской
	err := uc.txManager.DoReadCommitted(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем мастерскую: конкурирующие записи в неё ждут здесь
		if _, err := uc.workshopRepo.LockByID(txCtx, req.WorkshopID); err != nil {
			if errors.Is(err, workshopRepo.ErrWorkshopNotFound) {
				uc.logger.Warn("CreateAppointment: workshop id=%d not found", req.WorkshopID)
				return ErrWorkshopNotFound
			}
			uc.logger.Error("CreateAppointment: failed to lock workshop id=%d: %v", req.WorkshopID, err)
			return fmt.Errorf("%w: failed to lock workshop: %v", ErrInternal, err)
		}

		// 3.2. Все записи мастерской
		appointments, err := uc.appointmentRepo.ListByWorkshop(txCtx, req.WorkshopID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 3.3. Любое пересечение отклоняет запрос
		if hasOverlap(interval, appointments) {
			uc.logger.Warn("CreateAppointment: slot not available at workshop id=%d", req.WorkshopID)
			return ErrSlotNotAvailable
		}

		// 3.4. Единственная запись в хранилище
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			CarID:      req.CarID,
			WorkshopID: req.WorkshopID,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrOverlap) {
				uc.logger.Warn("CreateAppointment: concurrent booking won at workshop id=%d", req.WorkshopID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrWorkshopNotFound) || errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		CarID:      result.CarID,
		WorkshopID: result.WorkshopID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		CreatedAt:  result.CreatedAt,
	}, nil
}
