package list_enquiries

import (
	"net/http"

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

// Handle GET /services/enquiries и GET /services/admin/enquiries
// Клиент получает только свои заявки, фильтр customerId для него игнорируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /enquiries - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := FromQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /enquiries - Invalid query: user_id=%d, error=%v", actor.ID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	list, err := h.service.List(r.Context(), req, actor)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /enquiries - Failed to list enquiries: user_id=%d, error=%v", actor.ID, err)
		} else {
			h.logger.Warn("GET /enquiries - Rejected: user_id=%d, status=%d, error=%v", actor.ID, status, err)
		}
		return
	}

	h.logger.Info("GET /enquiries - Enquiries retrieved successfully: user_id=%d, count=%d", actor.ID, len(list.Enquiries))
	handlers.RespondJSON(w, http.StatusOK, list)
}
