package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Коды ошибок postgres
const (
	pqExclusionViolation  = "23P01"
	pqForeignKeyViolation = "23503"
	appointmentsTable     = "appointments"
)

var appointmentColumns = []string{
	"id",
	"car_id",
	"workshop_id",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий для работы с записями на обслуживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет запись одним INSERT
// Пересечение с существующей записью той же мастерской отсекается
// ограничением EXCLUDE и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(appointmentsTable).
		Columns("car_id", "workshop_id", "start_time", "end_time").
		Values(appointment.CarID, appointment.WorkshopID, appointment.StartTime, appointment.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *appointment
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, translateInsertError(err)
	}

	return &created, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var appointment domain.Appointment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.CarID,
		&appointment.WorkshopID,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return &appointment, nil
}

// ListByWorkshop получает все записи мастерской
func (r *Repository) ListByWorkshop(ctx context.Context, workshopID int64) ([]*domain.Appointment, error) {
	return r.List(ctx, domain.AppointmentsFilter{WorkshopID: &workshopID})
}

// ListEndingOnOrAfter получает записи всех мастерских, которые заканчиваются не раньше since
func (r *Repository) ListEndingOnOrAfter(ctx context.Context, since time.Time) ([]*domain.Appointment, error) {
	return r.List(ctx, domain.AppointmentsFilter{EndsOnOrAfter: &since})
}

// List получает записи по фильтру, отсортированные по времени начала
//
// StartsOn отбирает записи, начинающиеся в эту календарную дату
// (граница суток берется в часовом поясе переданного значения)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		OrderBy("start_time ASC", "id ASC")

	if filter.WorkshopID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"workshop_id": *filter.WorkshopID})
	}

	if filter.StartsOn != nil {
		dayStart := truncateToDay(*filter.StartsOn)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"start_time": dayStart}).
			Where(squirrel.Lt{"start_time": dayStart.AddDate(0, 0, 1)})
	}

	if filter.EndsOnOrAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_time": *filter.EndsOnOrAfter})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment

		err := rows.Scan(
			&appointment.ID,
			&appointment.CarID,
			&appointment.WorkshopID,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func translateInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation:
			return fmt.Errorf("%w: Create - %s", ErrOverlap, pqErr.Message)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: Create - %s", ErrReferenceNotFound, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
