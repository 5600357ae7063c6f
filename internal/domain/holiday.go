package domain

import (
	"fmt"
	"strings"
	"time"
)

// MonthDayFormat layout of a yearly recurring holiday
const MonthDayFormat = "01-02"

// Holiday a closed day rule. Exactly one of Date, MonthDay, Weekday is set.
type Holiday struct {
	ID          int64
	Date        *time.Time    // one-off date
	MonthDay    string        // "MM-DD", every year
	Weekday     *time.Weekday // every week
	Name        string
	Description string
	CreatedAt   time.Time
}

// Matches reports whether the rule closes the business on date
func (h *Holiday) Matches(date time.Time) bool {
	switch {
	case h.Date != nil:
		return SameDay(*h.Date, date)
	case h.MonthDay != "":
		return date.Format(MonthDayFormat) == h.MonthDay
	case h.Weekday != nil:
		return date.Weekday() == *h.Weekday
	default:
		return false
	}
}

// Validate checks the rule has exactly one well-formed recurrence and a name
func (h *Holiday) Validate() error {
	set := 0
	if h.Date != nil {
		set++
	}
	if h.MonthDay != "" {
		if _, err := time.Parse(MonthDayFormat, h.MonthDay); err != nil {
			return fmt.Errorf("%w: month_day must be MM-DD, got %q", ErrValidation, h.MonthDay)
		}
		set++
	}
	if h.Weekday != nil {
		if *h.Weekday < time.Sunday || *h.Weekday > time.Saturday {
			return fmt.Errorf("%w: weekday out of range", ErrValidation)
		}
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: holiday must set exactly one of date, month_day, weekday", ErrValidation)
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("%w: holiday name is required", ErrValidation)
	}
	return nil
}

// ParseWeekday accepts english weekday names, case-insensitive
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrValidation, s)
}

// ParseDate parses a YYYY-MM-DD calendar date in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, s)
	}
	return d, nil
}
