package get_recommendations

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса рекомендаций
type Request struct {
	CarID        int64  // ID машины
	DistanceMode string // "local", "external", "google" или пусто (автовыбор)
}

// Response упорядоченный список мастерских со свободными слотами
type Response struct {
	Strategy        string // Фактически использованная стратегия расчета расстояния
	Recommendations []*domain.Recommendation
}

// Options параметры подбора
type Options struct {
	LookaheadDays int            // Горизонт в днях после первого дня окна
	SlotDuration  time.Duration  // Длина слота и шаг перебора
	Location      *time.Location // Часовой пояс часов работы мастерских
	Concurrency   int            // Сколько мастерских обрабатывать параллельно (0 - без ограничения)
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		LookaheadDays: domain.DefaultLookaheadDays,
		SlotDuration:  domain.DefaultSlotDuration,
		Location:      time.UTC,
		Concurrency:   8,
	}
}
