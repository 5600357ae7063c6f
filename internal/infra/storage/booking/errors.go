package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда интервал пересекается с существующим бронированием
	// (exclusion constraint)
	ErrOverlap = errors.New("booking.repository: interval overlaps existing booking")

	// ErrSerialization возвращается при конфликте сериализации; пересечения он не означает
	ErrSerialization = errors.New("booking.repository: serialization failure")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

const (
	pqExclusionViolation = "23P01"
	pqSerializationError = "40001"
)

// isOverlapError распознаёт нарушение exclusion constraint по интервалам
func isOverlapError(err error) bool {
	return hasCode(err, pqExclusionViolation)
}

// isSerializationError распознаёт 40001; транзакцию можно повторить
func isSerializationError(err error) bool {
	return hasCode(err, pqSerializationError)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == code
}
