package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/dbmetrics"
)

var testDate = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func txContext(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) (context.Context, *sql.Tx) {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), dbmetrics.SqlTxWrapper{Tx: tx}), tx
}

func TestRepository_LockDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	err := repo.LockDate(context.Background(), testDate)
	assert.ErrorIs(t, err, ErrTransaction)

	ctx, tx := txContext(t, db, mock)
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("bookings:2026-11-02").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	require.NoError(t, repo.LockDate(ctx, testDate))
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows(bookingColumns).
		AddRow(1, "e-1", testDate, "09:00:00", "11:00:00", time.Now()).
		AddRow(2, "e-2", testDate, "13:00:00", "15:00:00", time.Now())

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE booking_date = \$1 ORDER BY start_time ASC, end_time ASC$`).
		WithArgs("2026-11-02").
		WillReturnRows(rows)

	got, err := repo.ListByDate(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e-1", got[0].EnquiryID)
	assert.Equal(t, domain.TimeRange{Start: "09:00", End: "11:00"}, got[0].Range)
	assert.Equal(t, domain.TimeRange{Start: "13:00", End: "15:00"}, got[1].Range)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByDate_LocksInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	ctx, tx := txContext(t, db, mock)

	mock.ExpectQuery(`FROM bookings WHERE booking_date = \$1 .*FOR UPDATE`).
		WithArgs("2026-11-02").
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectRollback()

	got, err := repo.ListByDate(ctx, testDate)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	b := &domain.Booking{EnquiryID: "e-1", Date: testDate, Range: domain.TimeRange{Start: "09:00", End: "11:00"}}

	mock.ExpectQuery(`INSERT INTO bookings \(enquiry_id,booking_date,start_time,end_time\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id, created_at`).
		WithArgs("e-1", "2026-11-02", "09:00", "11:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))

	created, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		EnquiryID: "e-2", Date: testDate, Range: domain.TimeRange{Start: "09:00", End: "11:00"},
	})
	assert.ErrorIs(t, err, ErrOverlap)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_SerializationFailureIsNotOverlap(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		EnquiryID: "e-2", Date: testDate, Range: domain.TimeRange{Start: "11:00", End: "13:00"},
	})
	assert.ErrorIs(t, err, ErrSerialization)
	assert.NotErrorIs(t, err, ErrOverlap)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	res := domain.Reservation{Date: testDate, Range: domain.TimeRange{Start: "09:00", End: "11:00"}}

	mock.ExpectExec(`DELETE FROM bookings WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM bookings WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "e-1", res)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), "e-1", res)
	require.NoError(t, err)
	assert.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
