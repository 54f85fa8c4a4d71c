package list_appointments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidWorkshopID = "некорректный ID мастерской"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?date={YYYY-MM-DD}&workshopId={id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListRequest{}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date: %q", dateStr)
			handlers.RespondValidationError(w, "date", msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if workshopStr := query.Get("workshopId"); workshopStr != "" {
		workshopID, err := strconv.ParseInt(workshopStr, 10, 64)
		if err != nil || workshopID <= 0 {
			h.logger.Warn("GET /appointments - Invalid workshop ID: %q", workshopStr)
			handlers.RespondValidationError(w, "workshopId", msgInvalidWorkshopID)
			return
		}
		req.WorkshopID = &workshopID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Appointments listed: total=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
