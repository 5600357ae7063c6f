package domain

import (
	"fmt"

	"github.com/m04kA/SMC-MillService/pkg/types"
)

// TimeSlot a bookable window offered to customers (computed, never persisted)
type TimeSlot = TimeRange

// BusinessHours opening hours of the mill and the default slot length
type BusinessHours struct {
	Open        types.TimeString
	Close       types.TimeString
	SlotMinutes int
}

// DefaultBusinessHours 09:00-17:00 with 120 minute slots
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Open:        DefaultBusinessOpen,
		Close:       DefaultBusinessClose,
		SlotMinutes: DefaultSlotMinutes,
	}
}

// Validate checks that the hours describe a non-empty working day
func (h BusinessHours) Validate() error {
	if err := h.Open.Validate(); err != nil {
		return fmt.Errorf("business open: %w", err)
	}
	if err := h.Close.Validate(); err != nil {
		return fmt.Errorf("business close: %w", err)
	}
	if !h.Open.IsBefore(h.Close) {
		return fmt.Errorf("business close %s must be after open %s", h.Close, h.Open)
	}
	if err := ValidateSlotMinutes(h.SlotMinutes); err != nil {
		return err
	}
	return nil
}

// Span returns the whole working day as one range
func (h BusinessHours) Span() TimeRange {
	return TimeRange{Start: h.Open, End: h.Close}
}

// Contains reports whether r lies entirely inside business hours
func (h BusinessHours) Contains(r TimeRange) bool {
	return !r.Start.IsBefore(h.Open) && !r.End.IsAfter(h.Close)
}

// ValidateSlotMinutes checks the slot length bounds
func ValidateSlotMinutes(minutes int) error {
	if minutes < MinSlotMinutes || minutes > MaxSlotMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrValidation, MinSlotMinutes, MaxSlotMinutes)
	}
	return nil
}
