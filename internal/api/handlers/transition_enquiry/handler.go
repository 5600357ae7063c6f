package transition_enquiry

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
	"github.com/m04kA/SMC-MillService/internal/api/middleware"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user id"
)

type Handler struct {
	useCase TransitionEnquiryUseCase
	action  string
	logger  Logger
}

// NewHandler action фиксирует действие маршрута;
// пустая строка означает, что действие берётся из пути {action}
func NewHandler(useCase TransitionEnquiryUseCase, action string, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		action:  action,
		logger:  logger,
	}
}

// Handle PUT /services/enquiries/{id}/cancel, PUT /services/enquiries/{id}/accept-proposal
// и PUT /services/admin/enquiries/{id}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	enquiryID := vars["id"]
	action := h.action
	if action == "" {
		action = vars["action"]
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /enquiries/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело может отсутствовать: cancel, review, start
	var body TransitionRequest
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PUT /enquiries/{id}/%s - Invalid request body: enquiry_id=%s, error=%v", action, enquiryID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), body.ToUseCaseRequest(enquiryID, action, actor))
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("PUT /enquiries/{id}/%s - Failed: enquiry_id=%s, error=%v", action, enquiryID, err)
		} else {
			h.logger.Warn("PUT /enquiries/{id}/%s - Rejected: enquiry_id=%s, %s/%d, status=%d, error=%v",
				action, enquiryID, actor.Role, actor.ID, status, err)
		}
		return
	}

	h.logger.Info("PUT /enquiries/{id}/%s - Enquiry moved %s -> %s: enquiry_id=%s, %s/%d",
		action, result.From, result.Enquiry.Status(), enquiryID, actor.Role, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainEnquiry(result.Enquiry))
}
