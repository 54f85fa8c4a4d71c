package get_recommendations

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getRecommendations "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_recommendations"
)

// RecommendationResponse HTTP response model
// Distance в метрах; при distanceUnavailable значение не определено
type RecommendationResponse struct {
	WorkshopID          int64    `json:"workshopId"`
	WorkshopName        string   `json:"workshopName"`
	Distance            *float64 `json:"distance"`
	DistanceUnavailable bool     `json:"distanceUnavailable,omitempty"`
	DistanceError       string   `json:"distanceError,omitempty"`
	AvailableSlots      []string `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRecommendations.Response, loc *time.Location) []RecommendationResponse {
	result := make([]RecommendationResponse, 0, len(resp.Recommendations))

	for _, r := range resp.Recommendations {
		item := RecommendationResponse{
			WorkshopID:     r.WorkshopID,
			WorkshopName:   r.WorkshopName,
			AvailableSlots: make([]string, 0, len(r.AvailableSlots)),
		}

		if r.HasDistance() {
			meters := r.Distance
			item.Distance = &meters
		} else {
			item.DistanceUnavailable = true
			item.DistanceError = r.DistanceError.Error()
		}

		for _, slot := range r.AvailableSlots {
			item.AvailableSlots = append(item.AvailableSlots, slot.In(loc).Format(domain.DateTimeFormat))
		}

		result = append(result, item)
	}

	return result
}
