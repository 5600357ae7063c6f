package ledger

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках журнала бронирований
	ErrInternal = errors.New("ledger: internal error")
)

// Результаты резервирования для метрик
const (
	resultReserved = "reserved"
	resultHeld     = "already_held"
	resultConflict = "conflict"
	resultError    = "error"
)
