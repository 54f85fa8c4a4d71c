package get_recommendations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	carRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/car"
	"github.com/m04kA/SMC-AppointmentService/internal/service/distance"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type workshopRepoStub struct {
	workshops []*domain.Workshop
	err       error
}

func (r *workshopRepoStub) ListAll(ctx context.Context) ([]*domain.Workshop, error) {
	return r.workshops, r.err
}

type carRepoStub struct{ err error }

func (r *carRepoStub) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Car{ID: id, Latitude: 0, Longitude: 0}, nil
}

type appointmentRepoStub struct {
	appointments []*domain.Appointment
	since        time.Time
	err          error
}

func (r *appointmentRepoStub) ListEndingOnOrAfter(ctx context.Context, since time.Time) ([]*domain.Appointment, error) {
	r.since = since
	return r.appointments, r.err
}

// distanceByLatitude отдает расстояние, закодированное широтой мастерской
type distanceByLatitude struct {
	failing map[float64]error
}

func (p distanceByLatitude) Distance(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	if err, ok := p.failing[to.Latitude]; ok {
		return 0, err
	}
	return to.Latitude * 1000, nil
}

type fixedSelector struct{ provider distance.Provider }

func (s fixedSelector) Select(mode string) (distance.Provider, string, error) {
	if mode != "" && mode != "local" {
		return nil, "", distance.ErrUnknownMode
	}
	return s.provider, distance.StrategyLocal, nil
}

type noKeyClient struct{}

func (noKeyClient) HasAPIKey() bool { return false }

func (noKeyClient) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (float64, error) {
	return 0, errors.New("must not be called")
}

func day(d, hour int) time.Time {
	return time.Date(2026, 10, d, hour, 0, 0, 0, time.UTC)
}

func workshop(id int64, latitude float64, open, close string) *domain.Workshop {
	return &domain.Workshop{
		ID:          id,
		Name:        "Workshop",
		Latitude:    latitude,
		OpeningTime: types.MustTimeString(open),
		ClosingTime: types.MustTimeString(close),
	}
}

func newUseCase(workshops []*domain.Workshop, appointments []*domain.Appointment, provider distance.Provider, now time.Time) (*UseCase, *appointmentRepoStub) {
	appointmentRepo := &appointmentRepoStub{appointments: appointments}
	uc := NewUseCase(
		&workshopRepoStub{workshops: workshops},
		&carRepoStub{},
		appointmentRepo,
		fixedSelector{provider: provider},
		DefaultOptions(),
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: now})
	return uc, appointmentRepo
}

func slotsOn(slots []time.Time, d int) []int {
	hours := make([]int, 0)
	for _, s := range slots {
		if s.Day() == d {
			hours = append(hours, s.Hour())
		}
	}
	return hours
}

func TestExecute_ExcludesBookedSlotToday(t *testing.T) {
	for _, now := range []time.Time{day(19, 8), day(19, 12)} {
		t.Run(now.Format(domain.DateTimeFormat), func(t *testing.T) {
			appointments := []*domain.Appointment{
				{ID: 1, WorkshopID: 1, StartTime: day(19, 10), EndTime: day(19, 11)},
				{ID: 2, WorkshopID: 9, StartTime: day(19, 14), EndTime: day(19, 15)},
			}
			uc, repo := newUseCase([]*domain.Workshop{workshop(1, 1, "09:00", "17:00")}, appointments, distanceByLatitude{}, now)

			resp, err := uc.Execute(context.Background(), &Request{CarID: 1})

			require.NoError(t, err)
			require.Len(t, resp.Recommendations, 1)
			slots := resp.Recommendations[0].AvailableSlots
			assert.Equal(t, []int{9, 11, 12, 13, 14, 15, 16}, slotsOn(slots, 19))
			assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16}, slotsOn(slots, 20))
			assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16}, slotsOn(slots, 24))
			assert.Empty(t, slotsOn(slots, 25))
			assert.Len(t, slots, 6*8-1)
			assert.Equal(t, day(19, 0), repo.since)
		})
	}
}

func TestExecute_WindowStartsTomorrowAfterClosing(t *testing.T) {
	now := time.Date(2026, 10, 19, 17, 30, 0, 0, time.UTC)
	uc, _ := newUseCase([]*domain.Workshop{workshop(1, 1, "09:00", "17:00")}, nil, distanceByLatitude{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CarID: 1})

	require.NoError(t, err)
	slots := resp.Recommendations[0].AvailableSlots
	require.NotEmpty(t, slots)
	assert.Equal(t, day(20, 9), slots[0])
	assert.Equal(t, day(25, 16), slots[len(slots)-1])
	assert.Len(t, slots, 6*8)
}

func TestExecute_AtClosingTimeWindowStartsToday(t *testing.T) {
	uc, _ := newUseCase([]*domain.Workshop{workshop(1, 1, "09:00", "17:00")}, nil, distanceByLatitude{}, day(19, 17))

	resp, err := uc.Execute(context.Background(), &Request{CarID: 1})

	require.NoError(t, err)
	assert.Equal(t, day(19, 9), resp.Recommendations[0].AvailableSlots[0])
}

func TestExecute_SlotsStayWithinHours(t *testing.T) {
	uc, _ := newUseCase([]*domain.Workshop{workshop(1, 1, "09:30", "17:00")}, nil, distanceByLatitude{}, day(19, 8))

	resp, err := uc.Execute(context.Background(), &Request{CarID: 1})

	require.NoError(t, err)
	w := workshop(1, 1, "09:30", "17:00")
	for _, slot := range resp.Recommendations[0].AvailableSlots {
		assert.True(t, w.IsOpenAt(slot), "slot %s outside hours", slot)
		assert.Equal(t, 30, slot.Minute())
	}
	assert.Len(t, slotsOn(resp.Recommendations[0].AvailableSlots, 19), 8)
}

func TestExecute_RankingByDistance(t *testing.T) {
	unavailable := errors.New("denied")
	workshops := []*domain.Workshop{
		workshop(1, 30, "09:00", "17:00"),
		workshop(2, 10, "09:00", "17:00"),
		workshop(3, 99, "09:00", "17:00"),
		workshop(4, 20, "09:00", "17:00"),
		workshop(5, 10, "09:00", "17:00"),
		workshop(6, 98, "09:00", "17:00"),
	}
	provider := distanceByLatitude{failing: map[float64]error{99: unavailable, 98: unavailable}}
	uc, _ := newUseCase(workshops, nil, provider, day(19, 8))

	resp, err := uc.Execute(context.Background(), &Request{CarID: 1})

	require.NoError(t, err)
	ids := make([]int64, 0, len(resp.Recommendations))
	for _, r := range resp.Recommendations {
		ids = append(ids, r.WorkshopID)
	}
	// равные расстояния и недоступные сохраняют исходный порядок
	assert.Equal(t, []int64{2, 5, 4, 1, 3, 6}, ids)

	for i := 1; i < 4; i++ {
		assert.LessOrEqual(t, resp.Recommendations[i-1].Distance, resp.Recommendations[i].Distance)
	}
	assert.ErrorIs(t, resp.Recommendations[4].DistanceError, unavailable)
	assert.NotEmpty(t, resp.Recommendations[4].AvailableSlots, "distance failure must not drop slots")
}

func TestExecute_ExternalModeWithoutKey(t *testing.T) {
	selector := distance.NewSelector(distance.NewLocalProvider(), distance.NewExternalProvider(noKeyClient{}, time.Second), false)
	uc := NewUseCase(
		&workshopRepoStub{workshops: []*domain.Workshop{workshop(1, 1, "09:00", "17:00"), workshop(2, 2, "09:00", "17:00")}},
		&carRepoStub{},
		&appointmentRepoStub{},
		selector,
		DefaultOptions(),
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: day(19, 8)})

	resp, err := uc.Execute(context.Background(), &Request{CarID: 1, DistanceMode: "google"})

	require.NoError(t, err)
	assert.Equal(t, distance.StrategyExternal, resp.Strategy)
	require.Len(t, resp.Recommendations, 2)
	for _, r := range resp.Recommendations {
		assert.ErrorIs(t, r.DistanceError, distance.ErrDistanceUnavailable)
		assert.Zero(t, r.Distance, "local distance must not be substituted")
	}
}

func TestExecute_Errors(t *testing.T) {
	t.Run("invalid car id", func(t *testing.T) {
		uc, _ := newUseCase(nil, nil, distanceByLatitude{}, day(19, 8))
		_, err := uc.Execute(context.Background(), &Request{CarID: 0})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown mode", func(t *testing.T) {
		uc, _ := newUseCase(nil, nil, distanceByLatitude{}, day(19, 8))
		_, err := uc.Execute(context.Background(), &Request{CarID: 1, DistanceMode: "teleport"})
		require.ErrorIs(t, err, ErrUnknownDistanceMode)
	})

	t.Run("car not found", func(t *testing.T) {
		uc := NewUseCase(&workshopRepoStub{}, &carRepoStub{err: carRepo.ErrCarNotFound}, &appointmentRepoStub{},
			fixedSelector{provider: distanceByLatitude{}}, DefaultOptions(), logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{CarID: 1})
		require.ErrorIs(t, err, ErrCarNotFound)
	})

	t.Run("workshops unavailable", func(t *testing.T) {
		uc := NewUseCase(&workshopRepoStub{err: errors.New("db down")}, &carRepoStub{}, &appointmentRepoStub{},
			fixedSelector{provider: distanceByLatitude{}}, DefaultOptions(), logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{CarID: 1})
		require.ErrorIs(t, err, ErrInternal)
	})
}

func TestExecute_UsesConfiguredTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	options := DefaultOptions()
	options.Location = loc
	// 02:00 UTC = 10:00 по местному времени
	now := time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)
	uc := NewUseCase(
		&workshopRepoStub{workshops: []*domain.Workshop{workshop(1, 1, "09:00", "17:00")}},
		&carRepoStub{},
		&appointmentRepoStub{appointments: []*domain.Appointment{
			{WorkshopID: 1, StartTime: time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 10, 19, 4, 0, 0, 0, time.UTC)},
		}},
		fixedSelector{provider: distanceByLatitude{}},
		options,
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: now})

	resp, err := uc.Execute(context.Background(), &Request{CarID: 1})

	require.NoError(t, err)
	slots := resp.Recommendations[0].AvailableSlots
	assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 0, 0, loc), slots[0])
	assert.Equal(t, time.Date(2026, 10, 19, 10, 0, 0, 0, loc), slots[1])
	// запись 11:00-12:00 по местному времени
	assert.Equal(t, time.Date(2026, 10, 19, 12, 0, 0, 0, loc), slots[2])
}
