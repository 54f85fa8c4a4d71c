package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	carRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/car"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
)

// AppointmentRepository записи в памяти
type AppointmentRepository struct {
	store *Store
}

// Create проверяет пересечение и вставляет запись под одной блокировкой хранилища
func (r *AppointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cars[appointment.CarID]; !ok {
		return nil, fmt.Errorf("%w: Create - car id=%d", appointmentRepo.ErrReferenceNotFound, appointment.CarID)
	}
	if _, ok := s.workshops[appointment.WorkshopID]; !ok {
		return nil, fmt.Errorf("%w: Create - workshop id=%d", appointmentRepo.ErrReferenceNotFound, appointment.WorkshopID)
	}

	for i := range s.appointments {
		existing := &s.appointments[i]
		if existing.WorkshopID == appointment.WorkshopID && existing.Interval().Overlaps(appointment.Interval()) {
			return nil, fmt.Errorf("%w: Create - workshop id=%d", appointmentRepo.ErrOverlap, appointment.WorkshopID)
		}
	}

	created := *appointment
	created.ID = s.nextID
	created.CreatedAt = s.now()
	s.nextID++
	s.appointments = append(s.appointments, created)

	return &created, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.appointments {
		if s.appointments[i].ID == id {
			found := s.appointments[i]
			return &found, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (r *AppointmentRepository) ListByWorkshop(ctx context.Context, workshopID int64) ([]*domain.Appointment, error) {
	return r.List(ctx, domain.AppointmentsFilter{WorkshopID: &workshopID})
}

func (r *AppointmentRepository) ListEndingOnOrAfter(ctx context.Context, since time.Time) ([]*domain.Appointment, error) {
	return r.List(ctx, domain.AppointmentsFilter{EndsOnOrAfter: &since})
}

// List фильтрует записи так же, как postgres репозиторий
func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var dayStart, dayEnd time.Time
	if filter.StartsOn != nil {
		y, m, d := filter.StartsOn.Date()
		dayStart = time.Date(y, m, d, 0, 0, 0, 0, filter.StartsOn.Location())
		dayEnd = dayStart.AddDate(0, 0, 1)
	}

	result := make([]*domain.Appointment, 0)
	for i := range s.appointments {
		a := s.appointments[i]
		if filter.WorkshopID != nil && a.WorkshopID != *filter.WorkshopID {
			continue
		}
		if filter.StartsOn != nil && (a.StartTime.Before(dayStart) || !a.StartTime.Before(dayEnd)) {
			continue
		}
		if filter.EndsOnOrAfter != nil && a.EndTime.Before(*filter.EndsOnOrAfter) {
			continue
		}
		result = append(result, &a)
	}
	sortByStart(result)

	return result, nil
}

// WorkshopRepository мастерские в памяти
type WorkshopRepository struct {
	store *Store
}

func (r *WorkshopRepository) ListAll(ctx context.Context) ([]*domain.Workshop, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Workshop, 0, len(s.workshops))
	for id := range s.workshops {
		w := s.workshops[id]
		result = append(result, &w)
	}
	sortWorkshops(result)

	return result, nil
}

func (r *WorkshopRepository) GetByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workshops[id]
	if !ok {
		return nil, workshopRepo.ErrWorkshopNotFound
	}
	return &w, nil
}

// LockByID берет блокировку мастерской до конца транзакции
func (r *WorkshopRepository) LockByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	state, ok := txFromContext(ctx)
	if !ok {
		return nil, workshopRepo.ErrNotInTransaction
	}

	w, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	state.lock(id, r.store.workshopLock(id))
	return w, nil
}

// CarRepository машины в памяти
type CarRepository struct {
	store *Store
}

func (r *CarRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cars[id]
	if !ok {
		return nil, carRepo.ErrCarNotFound
	}
	return &c, nil
}
