package holiday

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

const tableHolidays = "holidays"

var holidayColumns = []string{
	"id",
	"holiday_date",
	"month_day",
	"weekday",
	"name",
	"description",
	"created_at",
}

// Repository репозиторий правил выходных дней
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория выходных дней
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает правило выходного дня
func (r *Repository) Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var date, monthDay, weekday interface{}
	if h.Date != nil {
		date = h.Date.Format(domain.DateFormat)
	}
	if h.MonthDay != "" {
		monthDay = h.MonthDay
	}
	if h.Weekday != nil {
		weekday = int(*h.Weekday)
	}

	query, args, err := psqlbuilder.Insert(tableHolidays).
		Columns("holiday_date", "month_day", "weekday", "name", "description").
		Values(date, monthDay, weekday, h.Name, h.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	h.CreatedAt = createdAt.Time

	return h, nil
}

// List получает все правила выходных дней
func (r *Repository) List(ctx context.Context) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From(tableHolidays).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		var (
			h         domain.Holiday
			date      sql.NullTime
			monthDay  sql.NullString
			weekday   sql.NullInt16
			desc      sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&h.ID, &date, &monthDay, &weekday, &h.Name, &desc, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		if date.Valid {
			d := date.Time
			h.Date = &d
		}
		h.MonthDay = monthDay.String
		if weekday.Valid {
			wd := time.Weekday(weekday.Int16)
			h.Weekday = &wd
		}
		h.Description = desc.String
		h.CreatedAt = createdAt.Time
		holidays = append(holidays, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// Delete удаляет правило выходного дня
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableHolidays).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}
