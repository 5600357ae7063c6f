package get_enquiry_image

import (
	"context"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

type EnquiryService interface {
	GetImage(ctx context.Context, id string, imageID int64, actor domain.Actor) (*domain.Image, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
