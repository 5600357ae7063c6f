package create_enquiry

import (
	"errors"
	"mime"
	"net/http"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
	"github.com/m04kA/SMC-MillService/internal/api/middleware"
	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user id"
	msgBodyTooLarge       = "request body is too large"
	msgSlotUnavailable    = "the requested time is no longer available, please pick another slot"

	// память под multipart; остальное уходит во временные файлы
	multipartMemory = 8 << 20
)

type Handler struct {
	useCase      CreateEnquiryUseCase
	maxBodyBytes int64
	logger       Logger
}

// NewHandler maxBodyBytes ограничивает размер тела вместе с изображениями
func NewHandler(useCase CreateEnquiryUseCase, maxBodyBytes int64, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle POST /services/enquiries
// multipart/form-data: workType, logItems (JSON), cubicFeet, requestedDate, requestedTime, notes, images[]
// или application/json без изображений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /enquiries - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var (
		req    *CreateEnquiryRequest
		images []domain.Image
		err    error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err = r.ParseMultipartForm(multipartMemory); err == nil {
			defer r.MultipartForm.RemoveAll()
			req, images, err = FromMultipartForm(r.MultipartForm)
		}
	default:
		req = &CreateEnquiryRequest{}
		err = handlers.DecodeJSON(r, req)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.logger.Warn("POST /enquiries - Body too large: user_id=%d", userID)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /enquiries - Invalid form: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Warn("POST /enquiries - Invalid request body: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, images))
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		switch {
		case status == http.StatusConflict:
			h.logger.Warn("POST /enquiries - %s: user_id=%d, date=%s, time=%s",
				msgSlotUnavailable, userID, req.RequestedDate, req.RequestedTime)
		case status >= http.StatusInternalServerError:
			h.logger.Error("POST /enquiries - Failed to create enquiry: user_id=%d, error=%v", userID, err)
		default:
			h.logger.Warn("POST /enquiries - Rejected: user_id=%d, status=%d, error=%v", userID, status, err)
		}
		return
	}

	h.logger.Info("POST /enquiries - Enquiry created: enquiry_id=%s, user_id=%d, images=%d",
		result.Enquiry.ID, userID, len(images))
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainEnquiry(result.Enquiry))
}
