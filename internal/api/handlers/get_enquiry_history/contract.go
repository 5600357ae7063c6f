package get_enquiry_history

import (
	"context"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries/models"
)

type EnquiryService interface {
	History(ctx context.Context, id string, actor domain.Actor) (*models.HistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
