package get_enquiry_history

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
	"github.com/m04kA/SMC-MillService/internal/api/middleware"
)

const msgMissingUserID = "missing user id"

type Handler struct {
	service EnquiryService
	logger  Logger
}

func NewHandler(service EnquiryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /services/enquiries/{id}/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	enquiryID := mux.Vars(r)["id"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /enquiries/{id}/history - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	history, err := h.service.History(r.Context(), enquiryID, actor)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /enquiries/{id}/history - Failed: enquiry_id=%s, error=%v", enquiryID, err)
		} else {
			h.logger.Warn("GET /enquiries/{id}/history - Rejected: enquiry_id=%s, user_id=%d, status=%d",
				enquiryID, actor.ID, status)
		}
		return
	}

	h.logger.Info("GET /enquiries/{id}/history - History retrieved: enquiry_id=%s, events=%d",
		enquiryID, len(history.Events))
	handlers.RespondJSON(w, http.StatusOK, history)
}
