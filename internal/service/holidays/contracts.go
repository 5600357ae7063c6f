package holidays

import (
	"context"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// HolidayRepository интерфейс репозитория выходных дней
type HolidayRepository interface {
	Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error)
	List(ctx context.Context) ([]*domain.Holiday, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
