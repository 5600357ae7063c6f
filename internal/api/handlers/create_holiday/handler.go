package create_holiday

import (
	"net/http"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
	"github.com/m04kA/SMC-MillService/internal/api/middleware"
	"github.com/m04kA/SMC-MillService/internal/service/holidays/models"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /services/admin/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req models.CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/holidays - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /admin/holidays - Failed to create holiday: user_id=%d, error=%v", userID, err)
		} else {
			h.logger.Warn("POST /admin/holidays - Rejected: user_id=%d, error=%v", userID, err)
		}
		return
	}

	h.logger.Info("POST /admin/holidays - Holiday created: %s, user_id=%d", created, userID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
