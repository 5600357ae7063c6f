package get_enquiry

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

// Handle GET /services/enquiries/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	enquiryID := mux.Vars(r)["id"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /enquiries/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит права доступа
	enquiry, err := h.service.GetByID(r.Context(), enquiryID, actor)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /enquiries/{id} - Failed to get enquiry: enquiry_id=%s, error=%v", enquiryID, err)
		} else {
			h.logger.Warn("GET /enquiries/{id} - Rejected: enquiry_id=%s, user_id=%d, status=%d", enquiryID, actor.ID, status)
		}
		return
	}

	h.logger.Info("GET /enquiries/{id} - Enquiry retrieved successfully: enquiry_id=%s, user_id=%d", enquiryID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, enquiry)
}
