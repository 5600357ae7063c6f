package transition_enquiry

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// EnquiryRepository интерфейс репозитория заявок
type EnquiryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	Update(ctx context.Context, e *domain.Enquiry) error
	AddEvent(ctx context.Context, ev *domain.StatusEvent) error
}

// Ledger интерфейс журнала бронирований
type Ledger interface {
	Reserve(ctx context.Context, reservation domain.Reservation, enquiryID string) error
	Release(ctx context.Context, reservation domain.Reservation, enquiryID string) error
}

// HolidayCalendar интерфейс календаря выходных
type HolidayCalendar interface {
	CheckOpen(ctx context.Context, date time.Time) error
	Location() *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счётчик переходов статусов
type MetricsRecorder interface {
	ObserveTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
