package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CarID      int64  `json:"carId"`
	WorkshopID int64  `json:"workshopId"`
	StartTime  string `json:"startTime"` // "2026-10-20 09:00:00"
	EndTime    string `json:"endTime"`   // "2026-10-20 10:00:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	CarID      int64  `json:"carId"`
	WorkshopID int64  `json:"workshopId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	CreatedAt  string `json:"createdAt"`
}

// fieldError ошибка разбора конкретного поля
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.err.Error()
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Время интерпретируется в часовом поясе loc
func (r *CreateAppointmentRequest) ToUseCaseRequest(loc *time.Location) (*createAppointment.Request, error) {
	start, err := parseDateTime(r.StartTime, loc)
	if err != nil {
		return nil, &fieldError{field: "startTime", err: err}
	}

	end, err := parseDateTime(r.EndTime, loc)
	if err != nil {
		return nil, &fieldError{field: "endTime", err: err}
	}

	return &createAppointment.Request{
		CarID:      r.CarID,
		WorkshopID: r.WorkshopID,
		StartTime:  start,
		EndTime:    end,
	}, nil
}

// parseDateTime пустая строка дает нулевое время, его отклонит use case
func parseDateTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(domain.DateTimeFormat, value, loc)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		CarID:      resp.CarID,
		WorkshopID: resp.WorkshopID,
		StartTime:  resp.StartTime.In(loc).Format(domain.DateTimeFormat),
		EndTime:    resp.EndTime.In(loc).Format(domain.DateTimeFormat),
		CreatedAt:  resp.CreatedAt.In(loc).Format(domain.DateTimeFormat),
	}
}
