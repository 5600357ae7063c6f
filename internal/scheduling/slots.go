// Package scheduling computes bookable windows inside business hours.
// Everything here is pure: no storage, no clock.
package scheduling

import (
	"fmt"
	"iter"
	"slices"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

// Grid возвращает все окна длительностью durationMinutes от открытия до закрытия.
// Окна идут подряд с фиксированным шагом; хвост короче длительности отбрасывается.
// Последовательность ленивая и перезапускаемая: каждый обход считает её заново.
func Grid(hours domain.BusinessHours, durationMinutes int) iter.Seq[domain.TimeSlot] {
	return func(yield func(domain.TimeSlot) bool) {
		if durationMinutes <= 0 {
			return
		}
		open, closing := hours.Open.Minutes(), hours.Close.Minutes()
		if open < 0 || closing < 0 {
			return
		}

		for start := open; start+durationMinutes <= closing; start += durationMinutes {
			slot, ok := window(start, durationMinutes)
			if !ok {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// Slots возвращает окна сетки, которые не пересекаются ни с одним забронированным интервалом
func Slots(hours domain.BusinessHours, durationMinutes int, booked []domain.TimeRange) iter.Seq[domain.TimeSlot] {
	return func(yield func(domain.TimeSlot) bool) {
		for slot := range Grid(hours, durationMinutes) {
			if overlapsAny(slot, booked) {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// AvailableSlots материализует Slots после проверки длительности.
// Для пустого списка бронирований возвращается вся сетка.
func AvailableSlots(hours domain.BusinessHours, durationMinutes int, booked []domain.TimeRange) ([]domain.TimeSlot, error) {
	if err := domain.ValidateSlotMinutes(durationMinutes); err != nil {
		return nil, err
	}
	slots := slices.Collect(Slots(hours, durationMinutes, booked))
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	return slots, nil
}

// IsTimeBooked проверяет, попадает ли момент t в один из забронированных интервалов.
// Интервалы полуоткрытые: время окончания брони свободно.
func IsTimeBooked(t types.TimeString, booked []domain.TimeRange) bool {
	for _, r := range booked {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

// IsFree проверяет, что интервал r не пересекается с забронированными
func IsFree(r domain.TimeRange, booked []domain.TimeRange) bool {
	return !overlapsAny(r, booked)
}

// FitsGrid проверяет, что интервал целиком лежит в рабочих часах
func FitsGrid(hours domain.BusinessHours, r domain.TimeRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !hours.Contains(r) {
		return fmt.Errorf("%w: %s-%s is outside business hours %s-%s",
			domain.ErrValidation, r.Start, r.End, hours.Open, hours.Close)
	}
	return nil
}

// SortRanges упорядочивает интервалы по началу, затем по концу
func SortRanges(ranges []domain.TimeRange) {
	slices.SortFunc(ranges, func(a, b domain.TimeRange) int {
		if d := a.Start.Minutes() - b.Start.Minutes(); d != 0 {
			return d
		}
		return a.End.Minutes() - b.End.Minutes()
	})
}

func overlapsAny(r domain.TimeRange, booked []domain.TimeRange) bool {
	for _, b := range booked {
		if r.Overlaps(b) {
			return true
		}
	}
	return false
}

func window(startMinutes, durationMinutes int) (domain.TimeSlot, bool) {
	start, err := types.FromMinutes(startMinutes)
	if err != nil {
		return domain.TimeSlot{}, false
	}
	r, err := domain.NewTimeRange(start, durationMinutes)
	if err != nil {
		return domain.TimeSlot{}, false
	}
	return r, true
}
