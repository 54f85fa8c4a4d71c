package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// loc задает часовой пояс для границ суток и форматирования времени
func NewService(appointmentRepo AppointmentRepository, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		location:        loc,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomainAppointment(appointment, s.location)
	return &response, nil
}

// List получает записи, отсортированные по времени начала
// Без даты возвращает записи, которые заканчиваются сегодня или позже
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error) {
	filter := domain.AppointmentsFilter{WorkshopID: req.WorkshopID}

	if req.Date != nil {
		y, m, d := req.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, s.location)
		filter.StartsOn = &day
	} else {
		y, m, d := s.timeProvider.Now().In(s.location).Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, s.location)
		filter.EndsOnOrAfter = &today
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	response := &models.ListResponse{
		Appointments: make([]models.AppointmentResponse, 0, len(appointments)),
		Total:        len(appointments),
	}
	for _, appointment := range appointments {
		response.Appointments = append(response.Appointments, models.FromDomainAppointment(appointment, s.location))
	}

	return response, nil
}
