package enquiry

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

var day = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

func enquiryRow(status string, scheduled bool) []driver.Value {
	var schedDate, schedStart, schedEnd driver.Value
	if scheduled {
		schedDate, schedStart, schedEnd = day, "13:00:00", "15:00:00"
	}
	return []driver.Value{
		"e-1", int64(42), "Resawing",
		[]byte(`[{"woodType":"oak","numberOfLogs":2,"cubicFeet":"183.33"}]`),
		"183.33", day, "09:00:00", int64(120), status,
		nil, nil, nil,
		nil, nil, nil,
		schedDate, schedStart, schedEnd,
		nil, "call first", nil,
		time.Now(), time.Now(),
	}
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM enquiries WHERE id = \$1$`).
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows(enquiryColumns).AddRow(enquiryRow("SCHEDULED", true)...))
	mock.ExpectQuery(`SELECT id, file_name, content_type, size_bytes FROM enquiry_images WHERE enquiry_id = \$1`).
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "file_name", "content_type", "size_bytes"}).
			AddRow(1, "log.jpg", "image/jpeg", 1024))

	e, err := repo.GetByID(context.Background(), "e-1")
	require.NoError(t, err)

	assert.Equal(t, domain.WorkResawing, e.WorkType)
	assert.Equal(t, domain.StatusScheduled, e.Status())
	assert.Equal(t, domain.Scheduled{Slot: domain.Reservation{
		Date:  day,
		Range: domain.TimeRange{Start: "13:00", End: "15:00"},
	}}, e.State)
	require.Len(t, e.LogItems, 1)
	assert.Equal(t, "oak", e.LogItems[0].WoodType)
	assert.True(t, e.TotalCubicFeet.Equal(decimal.RequireFromString("183.33")))
	assert.Equal(t, "call first", *e.Notes)
	assert.Nil(t, e.AdminNotes)
	assert.Nil(t, e.EstimatedCost)
	require.Len(t, e.Images, 1)
	assert.Equal(t, "log.jpg", e.Images[0].FileName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM enquiries WHERE id`).
		WillReturnRows(sqlmock.NewRows(enquiryColumns))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEnquiryNotFound)
}

func TestRepository_GetByID_InconsistentState(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	// SCHEDULED без scheduled_* колонок
	mock.ExpectQuery(`FROM enquiries WHERE id`).
		WillReturnRows(sqlmock.NewRows(enquiryColumns).AddRow(enquiryRow("SCHEDULED", false)...))

	_, err = repo.GetByID(context.Background(), "e-1")
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_Update_WritesOnlyCurrentVariant(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	e := &domain.Enquiry{
		ID: "e-1",
		State: domain.AlternateProposed{Slot: domain.Reservation{
			Date:  day,
			Range: domain.TimeRange{Start: "13:00", End: "15:00"},
		}},
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec(`UPDATE enquiries SET status = \$1, accepted_date = \$2, .* WHERE id = \$14`).
		WithArgs(
			"ALTERNATE_TIME_PROPOSED",
			nil, nil, nil,
			"2026-11-02", "13:00", "15:00",
			nil, nil, nil,
			nil, nil, sqlmock.AnyArg(), "e-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE enquiries`).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), &domain.Enquiry{ID: "gone", State: domain.Cancelled{}})
	assert.ErrorIs(t, err, ErrEnquiryNotFound)
}

func TestRepository_ListEvents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM enquiry_status_events WHERE enquiry_id = \$1 ORDER BY created_at ASC, id ASC`).
		WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(1, "e-1", nil, "ENQUIRY_RECEIVED", "submit", "customer", 42, nil, time.Now()).
			AddRow(2, "e-1", "ENQUIRY_RECEIVED", "CANCELLED", "cancel", "customer", 42, "changed plans", time.Now()))

	events, err := repo.ListEvents(context.Background(), "e-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.Status(""), events[0].From)
	assert.Equal(t, domain.StatusCancelled, events[1].To)
	assert.Equal(t, domain.RoleCustomer, events[1].Actor.Role)
	assert.Equal(t, "changed plans", events[1].Reason)
}
