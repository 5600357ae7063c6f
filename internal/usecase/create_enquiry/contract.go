package create_enquiry

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// EnquiryRepository интерфейс репозитория заявок
type EnquiryRepository interface {
	Create(ctx context.Context, e *domain.Enquiry, images []domain.Image) error
	AddEvent(ctx context.Context, ev *domain.StatusEvent) error
}

// Ledger интерфейс журнала бронирований
type Ledger interface {
	Reserve(ctx context.Context, reservation domain.Reservation, enquiryID string) error
}

// HolidayCalendar интерфейс календаря выходных
type HolidayCalendar interface {
	CheckOpen(ctx context.Context, date time.Time) error
	Location() *time.Location
}

// CatalogClient интерфейс клиента каталога товаров
type CatalogClient interface {
	GetWoodTypeLabelWithGracefulDegradation(ctx context.Context, code string) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
