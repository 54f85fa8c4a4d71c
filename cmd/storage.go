package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	carRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/car"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	workshopRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getRecommendationsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_recommendations"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type appointmentStorage interface {
	createAppointmentUC.AppointmentRepository
	getRecommendationsUC.AppointmentRepository
	appointments.AppointmentRepository
}

type workshopStorage interface {
	createAppointmentUC.WorkshopRepository
	getRecommendationsUC.WorkshopRepository
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	appointments appointmentStorage
	workshops    workshopStorage
	cars         createAppointmentUC.CarRepository
	txManager    createAppointmentUC.TransactionManager
	close        func() error
}

// newStorage создает хранилище; migrate применяет миграции перед стартом (только postgres)
func newStorage(ctx context.Context, cfg *config.Config, migrate bool, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store, err := newMemoryStore(cfg.Storage.Seed)
		if err != nil {
			return nil, err
		}
		log.Info("Using in-memory storage (cars=%d, workshops=%d)",
			len(cfg.Storage.Seed.Cars), len(cfg.Storage.Seed.Workshops))

		return &storage{
			appointments: store.Appointments(),
			workshops:    store.Workshops(),
			cars:         store.Cars(),
			txManager:    store.TxManager(),
			close:        func() error { return nil },
		}, nil
	}

	db, wrappedDB, err := openPostgres(ctx, cfg, m, stopCh)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrate {
		if _, err := applyMigrations(ctx, wrappedDB, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &storage{
		appointments: appointmentRepo.NewRepository(wrappedDB),
		workshops:    workshopRepo.NewRepository(wrappedDB),
		cars:         carRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		close:        db.Close,
	}, nil
}

// openPostgres подключается к базе и оборачивает соединение метриками
// При m == nil обёртка работает как прозрачный прокси
func openPostgres(ctx context.Context, cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}) (*sql.DB, *dbmetrics.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dbmetrics.WrapWithDefault(db, m, cfg.Database.DBName, stopCh), nil
}

func newMemoryStore(seed config.SeedConfig) (*memory.Store, error) {
	store := memory.NewStore()

	for _, c := range seed.Cars {
		store.AddCar(domain.Car{ID: c.ID, Latitude: c.Latitude, Longitude: c.Longitude})
	}

	for _, w := range seed.Workshops {
		opening, err := types.NewTimeStringFromString(w.OpeningTime)
		if err != nil {
			return nil, fmt.Errorf("seed workshop %d: %w", w.ID, err)
		}
		closing, err := types.NewTimeStringFromString(w.ClosingTime)
		if err != nil {
			return nil, fmt.Errorf("seed workshop %d: %w", w.ID, err)
		}

		store.AddWorkshop(domain.Workshop{
			ID:          w.ID,
			Name:        w.Name,
			Latitude:    w.Latitude,
			Longitude:   w.Longitude,
			OpeningTime: opening,
			ClosingTime: closing,
		})
	}

	return store, nil
}
