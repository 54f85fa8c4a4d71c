package workshop

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

const workshopsTable = "workshops"

var workshopColumns = []string{
	"id",
	"name",
	"latitude",
	"longitude",
	"opening_time",
	"closing_time",
}

// Repository справочник мастерских
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастерских
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAll получает все мастерские в порядке ID
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Workshop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workshopColumns...).
		From(workshopsTable).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	workshops := make([]*domain.Workshop, 0)
	for rows.Next() {
		var workshop domain.Workshop
		if err := scanWorkshop(rows, &workshop); err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		workshops = append(workshops, &workshop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return workshops, nil
}

// GetByID получает мастерскую по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	return r.getByID(ctx, id, false)
}

// LockByID получает мастерскую и блокирует её строку до конца транзакции (FOR UPDATE)
// Все создания записей в одну мастерскую выстраиваются в очередь на этой блокировке
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNotInTransaction
	}
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Workshop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(workshopColumns...).
		From(workshopsTable).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var workshop domain.Workshop
	err = scanWorkshop(executor.QueryRowContext(ctx, query, args...), &workshop)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkshopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan workshop: %v", ErrScanRow, err)
	}

	return &workshop, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkshop(row scanner, workshop *domain.Workshop) error {
	return row.Scan(
		&workshop.ID,
		&workshop.Name,
		&workshop.Latitude,
		&workshop.Longitude,
		&workshop.OpeningTime,
		&workshop.ClosingTime,
	)
}
