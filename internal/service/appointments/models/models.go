package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ListRequest запрос списка записей
type ListRequest struct {
	Date       *time.Time // Записи, начинающиеся в эту дату; без даты - заканчивающиеся сегодня или позже
	WorkshopID *int64     // Фильтр по мастерской (опционально)
}

// AppointmentResponse запись на обслуживание
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	CarID      int64  `json:"carId"`
	WorkshopID int64  `json:"workshopId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	CreatedAt  string `json:"createdAt"`
}

// ListResponse список записей
type ListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует запись в ответ, форматируя время в поясе loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		CarID:      a.CarID,
		WorkshopID: a.WorkshopID,
		StartTime:  a.StartTime.In(loc).Format(domain.DateTimeFormat),
		EndTime:    a.EndTime.In(loc).Format(domain.DateTimeFormat),
		CreatedAt:  a.CreatedAt.In(loc).Format(domain.DateTimeFormat),
	}
}
