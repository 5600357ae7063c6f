package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrValidation malformed or missing input; the caller can correct and resubmit
	ErrValidation = errors.New("validation error")

	// ErrHoliday the requested date is a closed day
	ErrHoliday = errors.New("business is closed on this date")

	// ErrConflict the interval overlaps an existing booking
	ErrConflict = errors.New("slot already booked")

	// ErrInvalidTransition the status change is not permitted from the current status
	ErrInvalidTransition = errors.New("status transition not permitted")

	// ErrEnquiryNotFound unknown enquiry id
	ErrEnquiryNotFound = errors.New("enquiry not found")

	// ErrAccessDenied the actor may not perform the operation
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTimeRange start is not strictly before end
	ErrInvalidTimeRange = fmt.Errorf("%w: start time must be before end time", ErrValidation)
)

// ConflictError carries the day's current bookings so the caller can offer alternatives
type ConflictError struct {
	Date      time.Time
	Requested TimeRange
	Booked    []TimeRange
}

func (e *ConflictError) Error() string {
	booked := make([]string, len(e.Booked))
	for i, r := range e.Booked {
		booked[i] = r.Start.String() + "-" + r.End.String()
	}
	return fmt.Sprintf("%s: %s %s-%s overlaps [%s]", ErrConflict, e.Date.Format(DateFormat),
		e.Requested.Start, e.Requested.End, strings.Join(booked, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// HolidayError the requested day is closed
type HolidayError struct {
	Date        time.Time
	Name        string
	Description string
}

func (e *HolidayError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrHoliday, e.Date.Format(DateFormat), e.Name)
}

func (e *HolidayError) Unwrap() error {
	return ErrHoliday
}

// TransitionError a rejected status transition
type TransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
