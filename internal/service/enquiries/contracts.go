package enquiries

import (
	"context"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

// EnquiryRepository интерфейс репозитория заявок (только чтение)
type EnquiryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	List(ctx context.Context, filter domain.EnquiriesFilter) ([]*domain.Enquiry, error)
	ListEvents(ctx context.Context, enquiryID string) ([]*domain.StatusEvent, error)
	GetImage(ctx context.Context, enquiryID string, imageID int64) (*domain.Image, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
