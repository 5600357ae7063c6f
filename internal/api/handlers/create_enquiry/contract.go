package create_enquiry

import (
	"context"

	createEnquiry "github.com/m04kA/SMC-MillService/internal/usecase/create_enquiry"
)

type CreateEnquiryUseCase interface {
	Execute(ctx context.Context, req *createEnquiry.Request) (*createEnquiry.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
