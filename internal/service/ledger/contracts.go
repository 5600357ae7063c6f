package ledger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, enquiryID string, reservation domain.Reservation) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учёт результатов резервирования
type MetricsRecorder interface {
	ObserveReservation(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
