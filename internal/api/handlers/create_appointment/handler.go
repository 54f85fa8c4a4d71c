package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается YYYY-MM-DD HH:MM:SS"
	msgPastTime           = "время начала уже прошло"
	msgSlotNotAvailable   = "выбранный интервал недоступен"
	msgCarNotFound        = "автомобиль не найден"
	msgWorkshopNotFound   = "мастерская не найдена"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		var fieldErr *fieldError
		if errors.As(err, &fieldErr) {
			handlers.RespondValidationError(w, fieldErr.field, msgInvalidDateTime)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createAppointment.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /appointments - Validation failed: field=%s, reason=%s", validationErr.Field, validationErr.Reason)
			handlers.RespondValidationError(w, validationErr.Field, validationErr.Reason)

		case errors.Is(err, createAppointment.ErrPastTime):
			h.logger.Warn("POST /appointments - Start time in the past: car_id=%d, workshop_id=%d", req.CarID, req.WorkshopID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodePastTime, msgPastTime)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: car_id=%d, workshop_id=%d", req.CarID, req.WorkshopID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrCarNotFound):
			h.logger.Warn("POST /appointments - Car not found: car_id=%d", req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createAppointment.ErrWorkshopNotFound):
			h.logger.Warn("POST /appointments - Workshop not found: workshop_id=%d", req.WorkshopID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: car_id=%d, workshop_id=%d, error=%v",
				req.CarID, req.WorkshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, car_id=%d, workshop_id=%d",
		result.ID, req.CarID, req.WorkshopID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
