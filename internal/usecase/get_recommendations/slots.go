package get_recommendations

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// searchWindow вычисляет окно поиска слотов мастерской
// Если сегодня мастерская уже закрылась, окно начинается завтра с открытия,
// иначе сегодня с открытия. Конец окна: закрытие через lookaheadDays дней после первого дня
func searchWindow(workshop *domain.Workshop, now time.Time, lookaheadDays int) domain.Interval {
	startDay := now
	if workshop.IsClosedForDay(now) {
		startDay = now.AddDate(0, 0, 1)
	}

	return domain.Interval{
		Start: workshop.OpeningTime.On(startDay),
		End:   workshop.ClosingTime.On(startDay.AddDate(0, 0, lookaheadDays)),
	}
}

// candidateSlots перебирает начала слотов с шагом step от начала окна до конца включительно
// и оставляет только те, что начинаются в часы работы [открытие, закрытие)
func candidateSlots(workshop *domain.Workshop, window domain.Interval, step time.Duration) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if step <= 0 {
		return slots
	}

	for start := window.Start; !start.After(window.End); start = start.Add(step) {
		if !workshop.IsOpenAt(start) {
			continue
		}
		slots = append(slots, domain.TimeSlot{Start: start, Duration: step})
	}

	return slots
}

// markBooked помечает слоты, пересекающиеся с записями мастерской
func markBooked(slots []domain.TimeSlot, appointments []*domain.Appointment) {
	for i := range slots {
		for _, appointment := range appointments {
			if appointment.Interval().Overlaps(slots[i].Interval()) {
				slots[i].Booked = true
				break
			}
		}
	}
}

// availableStarts возвращает начала свободных слотов в хронологическом порядке
func availableStarts(slots []domain.TimeSlot) []time.Time {
	starts := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		if !slot.Booked {
			starts = append(starts, slot.Start)
		}
	}
	return starts
}

// groupByWorkshop раскладывает записи по мастерским
func groupByWorkshop(appointments []*domain.Appointment) map[int64][]*domain.Appointment {
	grouped := make(map[int64][]*domain.Appointment)
	for _, appointment := range appointments {
		grouped[appointment.WorkshopID] = append(grouped[appointment.WorkshopID], appointment)
	}
	return grouped
}

// startOfDay полночь дня t в его часовом поясе
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
