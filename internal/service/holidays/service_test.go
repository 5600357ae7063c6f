package holidays

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/service/holidays/models"
	"github.com/m04kA/SMC-MillService/internal/testutil/memstore"
	"github.com/m04kA/SMC-MillService/pkg/logger"
	"github.com/m04kA/SMC-MillService/pkg/ptr"
)

func newCalendar(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	sunday := time.Sunday
	static := []domain.Holiday{
		{MonthDay: "12-25", Name: "Christmas Day", Description: "Mill closed"},
		{Weekday: &sunday, Name: "Sunday"},
	}
	return NewService(static, store.Holidays(), time.UTC, logger.NewNop()), store
}

func TestIsHoliday_StaticRules(t *testing.T) {
	s, _ := newCalendar(t)
	ctx := context.Background()

	closed, name, desc, err := s.IsHoliday(ctx, time.Date(2027, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, "Christmas Day", name)
	assert.Equal(t, "Mill closed", desc)

	closed, name, _, err = s.IsHoliday(ctx, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, "Sunday", name)

	closed, _, _, err = s.IsHoliday(ctx, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestIsHolidayString(t *testing.T) {
	s, _ := newCalendar(t)

	closed, _, _, err := s.IsHolidayString(context.Background(), "2026-12-25")
	require.NoError(t, err)
	assert.True(t, closed)

	_, _, _, err = s.IsHolidayString(context.Background(), "25.12.2026")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIsHoliday_RepositoryFailureIsNotOpen(t *testing.T) {
	s, store := newCalendar(t)
	store.Fail("holidays.List", errors.New("connection refused"))

	_, _, _, err := s.IsHoliday(context.Background(), time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInternal)

	err = s.CheckOpen(context.Background(), time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrHoliday)
}

func TestCreateAndCheckOpen(t *testing.T) {
	s, _ := newCalendar(t)
	ctx := context.Background()
	date := time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CheckOpen(ctx, date))

	created, err := s.Create(ctx, &models.CreateHolidayRequest{
		Date: ptr.Ptr("2026-11-06"), Name: " Stocktake ", Description: "Annual inventory",
	})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, "Stocktake", created.Name)
	assert.Equal(t, models.SourceDatabase, created.Source)

	err = s.CheckOpen(ctx, date)
	var holidayErr *domain.HolidayError
	require.ErrorAs(t, err, &holidayErr)
	assert.Equal(t, "Stocktake", holidayErr.Name)
	assert.Equal(t, "Annual inventory", holidayErr.Description)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Holidays, 3)
	assert.Equal(t, models.SourceConfig, list.Holidays[0].Source)
	assert.Nil(t, list.Holidays[0].ID)
	assert.Equal(t, "sunday", *list.Holidays[1].Weekday)
	assert.Equal(t, "2026-11-06", *list.Holidays[2].Date)

	require.NoError(t, s.Delete(ctx, *created.ID))
	require.NoError(t, s.CheckOpen(ctx, date))
	assert.ErrorIs(t, s.Delete(ctx, *created.ID), ErrHolidayNotFound)
}

func TestCreate_Validation(t *testing.T) {
	s, _ := newCalendar(t)

	tests := []struct {
		name string
		req  models.CreateHolidayRequest
	}{
		{"no rule", models.CreateHolidayRequest{Name: "Nothing"}},
		{"two rules", models.CreateHolidayRequest{Date: ptr.Ptr("2026-11-06"), MonthDay: ptr.Ptr("11-06"), Name: "Both"}},
		{"bad month day", models.CreateHolidayRequest{MonthDay: ptr.Ptr("13-40"), Name: "Bad"}},
		{"bad weekday", models.CreateHolidayRequest{Weekday: ptr.Ptr("caturday"), Name: "Bad"}},
		{"bad date", models.CreateHolidayRequest{Date: ptr.Ptr("tomorrow"), Name: "Bad"}},
		{"no name", models.CreateHolidayRequest{MonthDay: ptr.Ptr("01-01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCalendar_WithoutRepository(t *testing.T) {
	s := NewService(nil, nil, nil, logger.NewNop())

	closed, _, _, err := s.IsHoliday(context.Background(), time.Now())
	require.NoError(t, err)
	assert.False(t, closed)
	assert.Equal(t, time.Local, s.Location())

	_, err = s.Create(context.Background(), &models.CreateHolidayRequest{MonthDay: ptr.Ptr("01-01"), Name: "New Year"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, s.Delete(context.Background(), 1), ErrHolidayNotFound)
}
