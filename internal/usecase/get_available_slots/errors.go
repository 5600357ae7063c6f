package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

var (
	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = fmt.Errorf("%w: invalid date", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = fmt.Errorf("%w: date is too far in the future", domain.ErrValidation)

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = fmt.Errorf("%w: invalid time", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
