package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Store хранилище в памяти процесса
// Поддерживает те же контракты, что и postgres репозитории, и те же ошибки
type Store struct {
	mu           sync.RWMutex
	cars         map[int64]domain.Car
	workshops    map[int64]domain.Workshop
	appointments []domain.Appointment
	nextID       int64
	now          func() time.Time

	locksMu       sync.Mutex
	workshopLocks map[int64]*sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		cars:          make(map[int64]domain.Car),
		workshops:     make(map[int64]domain.Workshop),
		workshopLocks: make(map[int64]*sync.Mutex),
		nextID:        1,
		now:           time.Now,
	}
}

// AddCar добавляет или заменяет машину
func (s *Store) AddCar(car domain.Car) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars[car.ID] = car
}

// AddWorkshop добавляет или заменяет мастерскую
func (s *Store) AddWorkshop(workshop domain.Workshop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workshops[workshop.ID] = workshop
}

// Appointments репозиторий записей поверх хранилища
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

// Workshops справочник мастерских поверх хранилища
func (s *Store) Workshops() *WorkshopRepository {
	return &WorkshopRepository{store: s}
}

// Cars справочник машин поверх хранилища
func (s *Store) Cars() *CarRepository {
	return &CarRepository{store: s}
}

// TxManager менеджер "транзакций" хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

func (s *Store) workshopLock(id int64) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.workshopLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.workshopLocks[id] = lock
	}
	return lock
}

func sortByStart(appointments []*domain.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].StartTime.Equal(appointments[j].StartTime) {
			return appointments[i].ID < appointments[j].ID
		}
		return appointments[i].StartTime.Before(appointments[j].StartTime)
	})
}

func sortWorkshops(workshops []*domain.Workshop) {
	sort.Slice(workshops, func(i, j int) bool {
		return workshops[i].ID < workshops[j].ID
	})
}
