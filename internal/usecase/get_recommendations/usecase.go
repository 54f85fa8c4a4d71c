package get_recommendations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	carRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/car"
	"github.com/m04kA/SMC-AppointmentService/internal/service/distance"
)

// UseCase use case подбора мастерских и свободных слотов для машины
type UseCase struct {
	workshopRepo    WorkshopRepository
	carRepo         CarRepository
	appointmentRepo AppointmentRepository
	selector        DistanceSelector
	options         Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workshopRepo WorkshopRepository,
	carRepo CarRepository,
	appointmentRepo AppointmentRepository,
	selector DistanceSelector,
	options Options,
	logger Logger,
) *UseCase {
	defaults := DefaultOptions()
	if options.LookaheadDays < 0 {
		options.LookaheadDays = defaults.LookaheadDays
	}
	if options.SlotDuration <= 0 {
		options.SlotDuration = defaults.SlotDuration
	}
	if options.Location == nil {
		options.Location = defaults.Location
	}

	return &UseCase{
		workshopRepo:    workshopRepo,
		carRepo:         carRepo,
		appointmentRepo: appointmentRepo,
		selector:        selector,
		options:         options,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает все мастерские по возрастанию расстояния до машины
// Мастерские, для которых расстояние вычислить не удалось, остаются в ответе
// с пометкой и идут после всех остальных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.CarID <= 0 {
		return nil, fmt.Errorf("%w: carId must be a positive integer", ErrInvalidInput)
	}

	uc.logger.Info("GetRecommendations: car=%d, mode=%q", req.CarID, req.DistanceMode)

	// 1. Стратегия расчета расстояния
	provider, strategy, err := uc.selector.Select(req.DistanceMode)
	if err != nil {
		if errors.Is(err, distance.ErrUnknownMode) {
			uc.logger.Warn("GetRecommendations: %v", err)
			return nil, fmt.Errorf("%w: %q", ErrUnknownDistanceMode, req.DistanceMode)
		}
		return nil, fmt.Errorf("%w: select distance strategy: %v", ErrInternal, err)
	}

	// 2. Машина
	car, err := uc.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("GetRecommendations: car id=%d not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("GetRecommendations: failed to get car id=%d: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	// 3. Мастерские
	workshops, err := uc.workshopRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("GetRecommendations: failed to list workshops: %v", err)
		return nil, fmt.Errorf("%w: failed to list workshops: %v", ErrInternal, err)
	}

	// 4. Записи, заканчивающиеся сегодня или позже, одним запросом на весь подбор
	now := uc.timeProvider.Now().In(uc.options.Location)
	appointments, err := uc.appointmentRepo.ListEndingOnOrAfter(ctx, startOfDay(now))
	if err != nil {
		uc.logger.Error("GetRecommendations: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}
	byWorkshop := groupByWorkshop(appointments)

	// 5. Каждая мастерская считается независимо
	recommendations := make([]*domain.Recommendation, len(workshops))
	group, groupCtx := errgroup.WithContext(ctx)
	if uc.options.Concurrency > 0 {
		group.SetLimit(uc.options.Concurrency)
	}

	for i, workshop := range workshops {
		i, workshop := i, workshop
		group.Go(func() error {
			recommendations[i] = uc.recommend(groupCtx, workshop, car, provider, strategy, byWorkshop[workshop.ID], now)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: request cancelled: %v", ErrInternal, err)
	}

	// 6. Устойчивая сортировка: сначала по наличию расстояния, затем по возрастанию
	sort.SliceStable(recommendations, func(a, b int) bool {
		left, right := recommendations[a], recommendations[b]
		if left.HasDistance() != right.HasDistance() {
			return left.HasDistance()
		}
		if !left.HasDistance() {
			return false
		}
		return left.Distance < right.Distance
	})

	uc.logger.Info("GetRecommendations: car=%d, strategy=%s, workshops=%d", req.CarID, strategy, len(recommendations))

	return &Response{
		Strategy:        strategy,
		Recommendations: recommendations,
	}, nil
}

func (uc *UseCase) recommend(
	ctx context.Context,
	workshop *domain.Workshop,
	car *domain.Car,
	provider distance.Provider,
	strategy string,
	appointments []*domain.Appointment,
	now time.Time,
) *domain.Recommendation {
	recommendation := &domain.Recommendation{
		WorkshopID:     workshop.ID,
		WorkshopName:   workshop.Name,
		AvailableSlots: []time.Time{},
	}

	if workshop.HasValidHours() {
		window := searchWindow(workshop, now, uc.options.LookaheadDays)
		slots := candidateSlots(workshop, window, uc.options.SlotDuration)
		markBooked(slots, appointments)
		recommendation.AvailableSlots = availableStarts(slots)
	} else {
		uc.logger.Warn("GetRecommendations: workshop id=%d has invalid hours %s-%s, no slots",
			workshop.ID, workshop.OpeningTime, workshop.ClosingTime)
	}

	meters, err := provider.Distance(ctx, car.Location(), workshop.Location())
	if err != nil {
		uc.logger.Warn("GetRecommendations: %s distance to workshop id=%d unavailable: %v", strategy, workshop.ID, err)
		recommendation.DistanceError = err
		return recommendation
	}
	recommendation.Distance = meters

	return recommendation
}
