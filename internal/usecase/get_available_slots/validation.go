package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// validateDate проверяет, что дата не в прошлом и укладывается в горизонт записи
func validateDate(requestDate time.Time, now time.Time, maxAdvanceDays int) error {
	if domain.IsDateInPast(requestDate, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, requestDate.Format(domain.DateFormat))
	}

	// Если maxAdvanceDays = 0, нет ограничений на дату
	if maxAdvanceDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, maxAdvanceDays)
	if domain.DateOnly(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}
