package create_enquiry

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = fmt.Errorf("%w: invalid requested date", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = fmt.Errorf("%w: date is too far in the future", domain.ErrValidation)

	// ErrCubicFeetTooSmall возвращается, когда объём меньше минимального
	ErrCubicFeetTooSmall = fmt.Errorf("%w: cubic feet below minimum", domain.ErrValidation)

	// ErrTooManyImages возвращается при превышении числа вложений
	ErrTooManyImages = fmt.Errorf("%w: too many images", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
