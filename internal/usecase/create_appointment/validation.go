package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет обязательные поля и порядок границ интервала
func validateRequest(req *Request) error {
	if req == nil {
		return &ValidationError{Field: "request", Reason: "is required"}
	}
	if req.CarID <= 0 {
		return &ValidationError{Field: "carId", Reason: "must be a positive integer"}
	}
	if req.WorkshopID <= 0 {
		return &ValidationError{Field: "workshopId", Reason: "must be a positive integer"}
	}
	if req.StartTime.IsZero() {
		return &ValidationError{Field: "startTime", Reason: "is required"}
	}
	if req.EndTime.IsZero() {
		return &ValidationError{Field: "endTime", Reason: "is required"}
	}
	if !req.StartTime.Before(req.EndTime) {
		return &ValidationError{Field: "endTime", Reason: "must be after startTime"}
	}
	return nil
}

// validateNotPast проверяет, что интервал начинается не раньше now
func validateNotPast(start, now time.Time) error {
	if start.Before(now) {
		return fmt.Errorf("%w: start %s is before now %s",
			ErrPastTime, start.Format(domain.DateTimeFormat), now.Format(domain.DateTimeFormat))
	}
	return nil
}

// hasOverlap проверяет пересечение интервала с любой из записей
func hasOverlap(interval domain.Interval, appointments []*domain.Appointment) bool {
	for _, appointment := range appointments {
		if appointment.Interval().Overlaps(interval) {
			return true
		}
	}
	return false
}
