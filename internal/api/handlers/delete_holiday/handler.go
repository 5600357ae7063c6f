package delete_holiday

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
	"github.com/m04kA/SMC-MillService/internal/service/holidays"
)

const (
	msgInvalidHolidayID = "invalid holiday id"
	msgNotFound         = "holiday not found"
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

// Handle DELETE /services/admin/holidays/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /admin/holidays/{id} - Invalid holiday ID: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, holidays.ErrHolidayNotFound) {
			h.logger.Warn("DELETE /admin/holidays/{id} - Holiday not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/holidays/{id} - Failed to delete holiday: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/holidays/{id} - Holiday deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
