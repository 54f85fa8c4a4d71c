package appointment

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func at(day, hour int) time.Time {
	return time.Date(2026, 10, day, hour, 0, 0, 0, time.UTC)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	createdAt := at(19, 8)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO appointments (car_id,workshop_id,start_time,end_time) VALUES ($1,$2,$3,$4) RETURNING id, created_at")).
		WithArgs(int64(1), int64(2), at(20, 9), at(20, 10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), createdAt))

	input := &domain.Appointment{CarID: 1, WorkshopID: 2, StartTime: at(20, 9), EndTime: at(20, 10)}
	got, err := repo.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, createdAt, got.CreatedAt)
	assert.Zero(t, input.ID, "input must not be mutated")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_TranslatesPostgresErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "exclusion violation", err: &pq.Error{Code: "23P01", Message: "conflicting key value"}, want: ErrOverlap},
		{name: "serialization failure is not an overlap", err: &pq.Error{Code: "40001", Message: "could not serialize access"}, want: ErrExecQuery},
		{name: "foreign key", err: &pq.Error{Code: "23503", Message: "violates foreign key constraint"}, want: ErrReferenceNotFound},
		{name: "other", err: errors.New("connection reset"), want: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery("INSERT INTO appointments").WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), &domain.Appointment{
				CarID: 1, WorkshopID: 2, StartTime: at(20, 9), EndTime: at(20, 10),
			})

			require.ErrorIs(t, err, tt.want)
			if tt.want != ErrOverlap {
				assert.NotErrorIs(t, err, ErrOverlap)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT id, car_id, workshop_id, start_time, end_time, created_at FROM appointments WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(appointmentColumns).
				AddRow(int64(7), int64(1), int64(2), at(20, 9), at(20, 10), at(19, 8)))

		got, err := repo.GetByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, &domain.Appointment{
			ID: 7, CarID: 1, WorkshopID: 2, StartTime: at(20, 9), EndTime: at(20, 10), CreatedAt: at(19, 8),
		}, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("FROM appointments").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 7)

		require.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestRepository_ListByWorkshop(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, car_id, workshop_id, start_time, end_time, created_at FROM appointments WHERE workshop_id = $1 ORDER BY start_time ASC, id ASC")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(int64(1), int64(1), int64(2), at(20, 9), at(20, 10), at(19, 8)).
			AddRow(int64(2), int64(3), int64(2), at(20, 10), at(20, 11), at(19, 8)))

	got, err := repo.ListByWorkshop(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, at(20, 10), got[1].StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListEndingOnOrAfter(t *testing.T) {
	repo, mock := newMock(t)
	since := at(19, 0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE end_time >= $1 ORDER BY start_time ASC")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	got, err := repo.ListEndingOnOrAfter(context.Background(), since)

	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_StartsOn(t *testing.T) {
	repo, mock := newMock(t)
	workshopID := int64(2)
	day := at(20, 15)
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM appointments WHERE workshop_id = $1 AND start_time >= $2 AND start_time < $3 ORDER BY start_time ASC")).
		WithArgs(workshopID, at(20, 0), at(21, 0)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.List(context.Background(), domain.AppointmentsFilter{WorkshopID: &workshopID, StartsOn: &day})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_QueryError(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("FROM appointments").WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), domain.AppointmentsFilter{})

	require.ErrorIs(t, err, ErrExecQuery)
}
