package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// HolidayCalendar интерфейс календаря выходных
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, string, string, error)
	Location() *time.Location
}

// Ledger интерфейс журнала бронирований
type Ledger interface {
	BookedIntervals(ctx context.Context, date time.Time) ([]domain.TimeRange, error)
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
