package car

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository справочник машин (только чтение)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает машину с её последними известными координатами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "latitude", "longitude").
		From("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var car domain.Car
	err = executor.QueryRowContext(ctx, query, args...).Scan(&car.ID, &car.Latitude, &car.Longitude)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %v", ErrScanRow, err)
	}

	return &car, nil
}
