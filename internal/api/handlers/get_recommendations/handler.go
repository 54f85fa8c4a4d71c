package get_recommendations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getRecommendations "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_recommendations"
)

const (
	msgInvalidCarID        = "некорректный ID автомобиля"
	msgUnknownDistanceMode = "неизвестный способ расчета расстояния, допустимо: local, external, google"
	msgCarNotFound         = "автомобиль не найден"
)

type Handler struct {
	useCase  GetRecommendationsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetRecommendationsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/recommendations?carId={id}&distanceCalculation={mode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	carID, err := strconv.ParseInt(query.Get("carId"), 10, 64)
	if err != nil || carID <= 0 {
		h.logger.Warn("GET /recommendations - Invalid car ID: %q", query.Get("carId"))
		handlers.RespondValidationError(w, "carId", msgInvalidCarID)
		return
	}

	mode := query.Get("distanceCalculation")

	result, err := h.useCase.Execute(r.Context(), &getRecommendations.Request{
		CarID:        carID,
		DistanceMode: mode,
	})
	if err != nil {
		switch {
		case errors.Is(err, getRecommendations.ErrUnknownDistanceMode):
			h.logger.Warn("GET /recommendations - Unknown distance mode: %q", mode)
			handlers.RespondValidationError(w, "distanceCalculation", msgUnknownDistanceMode)

		case errors.Is(err, getRecommendations.ErrInvalidInput):
			h.logger.Warn("GET /recommendations - Invalid input: %v", err)
			handlers.RespondValidationError(w, "carId", msgInvalidCarID)

		case errors.Is(err, getRecommendations.ErrCarNotFound):
			h.logger.Warn("GET /recommendations - Car not found: car_id=%d", carID)
			handlers.RespondNotFound(w, msgCarNotFound)

		default:
			h.logger.Error("GET /recommendations - Failed to get recommendations: car_id=%d, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /recommendations - Recommendations built: car_id=%d, strategy=%s, workshops=%d",
		carID, result.Strategy, len(result.Recommendations))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
