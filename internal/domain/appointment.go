package domain

import "time"

// Appointment represents a booked service window of a car at a workshop
type Appointment struct {
	ID         int64
	CarID      int64
	WorkshopID int64
	StartTime  time.Time
	EndTime    time.Time
	CreatedAt  time.Time
}

// Interval returns the appointment's time window
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// AppointmentsFilter фильтр для получения списка записей
type AppointmentsFilter struct {
	WorkshopID    *int64     // Фильтр по мастерской (опционально)
	StartsOn      *time.Time // Записи, начинающиеся в эту дату (опционально)
	EndsOnOrAfter *time.Time // Записи, заканчивающиеся в эту дату или позже (опционально)
}
