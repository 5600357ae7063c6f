package get_available_slots

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /services/schedule/available/{date}
// Query params: duration (minutes, optional), time (HH:MM, optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(date, query.Get("duration"), query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /schedule/available/{date} - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /schedule/available/{date} - Failed to get slots: date=%s, error=%v", date, err)
		} else {
			h.logger.Warn("GET /schedule/available/{date} - Rejected: date=%s, status=%d, error=%v", date, status, err)
		}
		return
	}

	h.logger.Info("GET /schedule/available/{date} - Slots retrieved: date=%s, available=%d, booked=%d, holiday=%t",
		date, len(result.AvailableSlots), len(result.BookedSlots), result.IsHoliday)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
