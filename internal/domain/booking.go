package domain

import (
	"time"

	"github.com/jinzhu/now"

	"github.com/m04kA/SMC-MillService/pkg/types"
)

// TimeRange half-open interval [Start, End) within one day, minute resolution
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks both ends are well-formed and Start < End
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if !r.Start.IsBefore(r.End) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
// Adjacent intervals (one ends where the other starts) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Contains reports whether the instant t falls inside [Start, End)
func (r TimeRange) Contains(t types.TimeString) bool {
	return !t.IsBefore(r.Start) && t.IsBefore(r.End)
}

// DurationMinutes returns End - Start in minutes
func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

// NewTimeRange builds [start, start+minutes)
func NewTimeRange(start types.TimeString, minutes int) (TimeRange, error) {
	end, err := start.AddMinutes(minutes)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

// Reservation a time range on a concrete calendar day
type Reservation struct {
	Date  time.Time
	Range TimeRange
}

// Equal compares day and range
func (r Reservation) Equal(other Reservation) bool {
	return SameDay(r.Date, other.Date) && r.Range == other.Range
}

// Booking a persisted reservation in the ledger, tied to one enquiry
type Booking struct {
	ID        int64
	Date      time.Time
	Range     TimeRange
	EnquiryID string
	CreatedAt time.Time
}

// Reservation returns the booked day and range
func (b *Booking) Reservation() Reservation {
	return Reservation{Date: b.Date, Range: b.Range}
}

// DateOnly truncates t to the start of its calendar day (keeps location)
func DateOnly(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// SameDay reports whether both times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast reports whether date is before the calendar day of now
func IsDateInPast(date, current time.Time) bool {
	return DateOnly(date).Before(DateOnly(current))
}
