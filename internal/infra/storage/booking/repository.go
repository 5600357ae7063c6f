package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MillService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"enquiry_id",
	"booking_date",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий журнала бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockDate берёт транзакционную advisory-блокировку на дату.
// Все проверки пересечения и вставки на одну дату выполняются под этой блокировкой,
// поэтому две конкурентные резервации не могут обе увидеть «свободно».
// Блокировка снимается при завершении транзакции.
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockDate - requires an active transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", lockKey(date))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockDate - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockDate - execute: %v", ErrExecQuery, err)
	}
	return nil
}

// ListByDate получает бронирования на дату, отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"booking_date": dateArg(date)}).
		OrderBy("start_time ASC", "end_time ASC")

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Create создает бронирование.
// Нарушение exclusion constraint возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"enquiry_id",
			"booking_date",
			"start_time",
			"end_time",
		).
		Values(
			booking.EnquiryID,
			dateArg(booking.Date),
			booking.Range.Start,
			booking.Range.End,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt)
	if err != nil {
		if isOverlapError(err) {
			return nil, fmt.Errorf("%w: %s %s-%s", ErrOverlap,
				booking.Date.Format(domain.DateFormat), booking.Range.Start, booking.Range.End)
		}
		if isSerializationError(err) {
			return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// Delete удаляет бронирование заявки на указанный интервал.
// Возвращает false, если такой строки не было; это не ошибка.
func (r *Repository) Delete(ctx context.Context, enquiryID string, reservation domain.Reservation) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{
			"enquiry_id":   enquiryID,
			"booking_date": dateArg(reservation.Date),
			"start_time":   reservation.Range.Start,
			"end_time":     reservation.Range.End,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.EnquiryID,
			&booking.Date,
			&booking.Range.Start,
			&booking.Range.End,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// dateArg передаёт дату как "YYYY-MM-DD", чтобы часовой пояс не сдвигал день
func dateArg(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func lockKey(date time.Time) string {
	return "bookings:" + dateArg(date)
}
