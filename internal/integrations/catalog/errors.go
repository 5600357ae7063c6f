package catalog

import "errors"

var (
	// ErrWoodTypeNotFound возвращается, когда порода отсутствует в каталоге
	ErrWoodTypeNotFound = errors.New("wood type not found in catalog")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalog client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Каталог недоступен, заявка сохраняется без названий пород
	ErrServiceDegraded = errors.New("catalog unavailable: graceful degradation applied")
)
