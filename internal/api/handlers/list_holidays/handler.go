package list_holidays

import (
	"net/http"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
)

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

// Handle GET /services/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /holidays - Failed to list holidays: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /holidays - Holidays retrieved: count=%d", len(list.Holidays))
	handlers.RespondJSON(w, http.StatusOK, list)
}
