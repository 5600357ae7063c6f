package enquiries

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

var (
	// ErrImageNotFound возвращается, когда изображение не найдено
	ErrImageNotFound = fmt.Errorf("%w: image not found", domain.ErrEnquiryNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
