package holidays

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда правило не найдено
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holidays: internal error")
)
