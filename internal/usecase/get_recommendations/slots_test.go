package get_recommendations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// bookedByBranches проверка занятости слота в виде трех условий:
// начало записи в [s, e), конец записи в (s, e), запись накрывает слот
func bookedByBranches(slot domain.Interval, appointment domain.Interval) bool {
	startInside := !appointment.Start.Before(slot.Start) && appointment.Start.Before(slot.End)
	endInside := appointment.End.After(slot.Start) && appointment.End.Before(slot.End)
	covers := !appointment.Start.After(slot.Start) && !appointment.End.Before(slot.End)
	return startInside || endInside || covers
}

func TestBookedPredicateMatchesOverlap(t *testing.T) {
	base := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	slot := domain.Interval{Start: base.Add(10 * time.Hour), End: base.Add(11 * time.Hour)}

	// все интервалы с границами на сетке 15 минут вокруг слота
	for start := 8 * 4; start <= 13*4; start++ {
		for end := start + 1; end <= 13*4; end++ {
			appointment := domain.Interval{
				Start: base.Add(time.Duration(start) * 15 * time.Minute),
				End:   base.Add(time.Duration(end) * 15 * time.Minute),
			}
			assert.Equal(t, bookedByBranches(slot, appointment), appointment.Overlaps(slot),
				"appointment %s-%s", appointment.Start.Format("15:04"), appointment.End.Format("15:04"))
		}
	}
}

func TestCandidateSlots_InclusiveWindowEnd(t *testing.T) {
	w := workshop(1, 0, "09:00", "17:00")
	window := domain.Interval{Start: day(19, 9), End: day(19, 17)}

	slots := candidateSlots(w, window, time.Hour)

	// 17:00 входит в перебор, но отсекается часами работы
	assert.Len(t, slots, 8)
	assert.Equal(t, day(19, 16), slots[len(slots)-1].Start)
	assert.Empty(t, candidateSlots(w, window, 0))
}
