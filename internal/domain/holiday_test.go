package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/pkg/ptr"
)

func TestHoliday_Matches(t *testing.T) {
	christmas := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		holiday Holiday
		date    time.Time
		want    bool
	}{
		{"one-off hit", Holiday{Date: ptr.Ptr(christmas)}, christmas.Add(10 * time.Hour), true},
		{"one-off miss", Holiday{Date: ptr.Ptr(christmas)}, christmas.AddDate(1, 0, 0), false},
		{"yearly", Holiday{MonthDay: "12-25"}, christmas.AddDate(3, 0, 0), true},
		{"yearly miss", Holiday{MonthDay: "12-25"}, christmas.AddDate(0, 0, 1), false},
		{"weekly", Holiday{Weekday: ptr.Ptr(time.Sunday)}, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), true},
		{"empty rule", Holiday{}, christmas, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.holiday.Matches(tt.date))
		})
	}
}

func TestHoliday_Validate(t *testing.T) {
	assert.NoError(t, (&Holiday{MonthDay: "01-01", Name: "New Year"}).Validate())
	assert.ErrorIs(t, (&Holiday{MonthDay: "13-01", Name: "x"}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&Holiday{Name: "nothing set"}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&Holiday{MonthDay: "01-01", Weekday: ptr.Ptr(time.Monday), Name: "two"}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&Holiday{MonthDay: "01-01"}).Validate(), ErrValidation)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("funday")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-11-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("02/11/2026", time.UTC)
	assert.ErrorIs(t, err, ErrValidation)
}
