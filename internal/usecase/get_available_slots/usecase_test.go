package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/service/holidays"
	"github.com/m04kA/SMC-MillService/internal/service/ledger"
	"github.com/m04kA/SMC-MillService/internal/testutil/memstore"
	"github.com/m04kA/SMC-MillService/pkg/logger"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var today = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T, maxAdvanceDays int) (*UseCase, *ledger.Service) {
	t.Helper()
	store := memstore.New()
	log := logger.NewNop()

	calendar := holidays.NewService([]domain.Holiday{
		{MonthDay: "12-25", Name: "Christmas Day", Description: "Mill closed"},
	}, store.Holidays(), time.UTC, log)
	l := ledger.NewService(store.Bookings(), store.TxManager(), nil, log)

	uc := NewUseCase(calendar, l, domain.DefaultBusinessHours(), maxAdvanceDays, log)
	uc.timeProvider = fixedClock{today}
	return uc, l
}

func reserve(t *testing.T, l *ledger.Service, date time.Time, start, end, enquiryID string) {
	t.Helper()
	r := domain.Reservation{Date: date, Range: domain.TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}}
	require.NoError(t, l.Reserve(context.Background(), r, enquiryID))
}

func TestExecute_ScenarioA(t *testing.T) {
	uc, l := setup(t, 0)
	date := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	reserve(t, l, date, "09:00", "11:00", "e-1")
	reserve(t, l, date, "13:00", "15:00", "e-2")

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-11-02", DurationMinutes: 120})
	require.NoError(t, err)

	assert.False(t, resp.IsHoliday)
	assert.Equal(t, []domain.TimeSlot{
		{Start: "11:00", End: "13:00"},
		{Start: "15:00", End: "17:00"},
	}, resp.AvailableSlots)
	assert.Equal(t, []domain.TimeRange{
		{Start: "09:00", End: "11:00"},
		{Start: "13:00", End: "15:00"},
	}, resp.BookedSlots)
}

func TestExecute_DefaultDuration(t *testing.T) {
	uc, _ := setup(t, 0)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-11-02"})
	require.NoError(t, err)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Len(t, resp.AvailableSlots, 4)
	assert.Empty(t, resp.BookedSlots)
}

func TestExecute_Holiday(t *testing.T) {
	uc, _ := setup(t, 0)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-12-25"})
	require.NoError(t, err)
	assert.True(t, resp.IsHoliday)
	assert.Equal(t, "Christmas Day", resp.HolidayName)
	assert.Equal(t, "Mill closed", resp.HolidayDescription)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := setup(t, 30)

	tests := []struct {
		name string
		req  Request
	}{
		{"malformed date", Request{Date: "11/02/2026"}},
		{"past date", Request{Date: "2026-10-13"}},
		{"beyond horizon", Request{Date: "2026-12-01"}},
		{"duration too short", Request{Date: "2026-11-02", DurationMinutes: 1}},
		{"duration too long", Request{Date: "2026-11-02", DurationMinutes: 600}},
		{"malformed check time", Request{Date: "2026-11-02", CheckTime: "noon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	uc, _ := setup(t, 30)

	_, err := uc.Execute(context.Background(), &Request{Date: "2026-10-14"})
	assert.NoError(t, err)
}

func TestExecute_CheckTime(t *testing.T) {
	uc, l := setup(t, 0)
	date := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	reserve(t, l, date, "09:00", "11:00", "e-1")

	tests := []struct {
		at     string
		booked bool
	}{
		{"09:00", true},
		{"10:59", true},
		{"11:00", false},
		{"16:30", false},
	}
	for _, tt := range tests {
		resp, err := uc.Execute(context.Background(), &Request{Date: "2026-11-02", CheckTime: tt.at})
		require.NoError(t, err)
		require.NotNil(t, resp.TimeBooked)
		assert.Equal(t, tt.booked, *resp.TimeBooked, tt.at)
	}

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-11-02"})
	require.NoError(t, err)
	assert.Nil(t, resp.TimeBooked)

	resp, err = uc.Execute(context.Background(), &Request{Date: "2026-12-25", CheckTime: "12:00"})
	require.NoError(t, err)
	assert.True(t, *resp.TimeBooked)
}
