package transition_enquiry

import (
	"context"

	transitionEnquiry "github.com/m04kA/SMC-MillService/internal/usecase/transition_enquiry"
)

type TransitionEnquiryUseCase interface {
	Execute(ctx context.Context, req *transitionEnquiry.Request) (*transitionEnquiry.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
