package transition_enquiry

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrSlotInPast возвращается, когда новое время уже прошло
	ErrSlotInPast = fmt.Errorf("%w: time reference is in the past", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
