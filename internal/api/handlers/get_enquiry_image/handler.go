package get_enquiry_image

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MillService/internal/api/handlers"
	"github.com/m04kA/SMC-MillService/internal/api/middleware"
)

const (
	msgMissingUserID  = "missing user id"
	msgInvalidImageID = "invalid image id"
)

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

// Handle GET /services/enquiries/{id}/images/{imageId}
// Отдаёт содержимое файла как есть
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	enquiryID := vars["id"]

	imageID, err := strconv.ParseInt(vars["imageId"], 10, 64)
	if err != nil || imageID <= 0 {
		h.logger.Warn("GET /enquiries/{id}/images/{imageId} - Invalid image ID: %q", vars["imageId"])
		handlers.RespondBadRequest(w, msgInvalidImageID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /enquiries/{id}/images/{imageId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	img, err := h.service.GetImage(r.Context(), enquiryID, imageID, actor)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /enquiries/{id}/images/{imageId} - Failed: enquiry_id=%s, image_id=%d, error=%v",
				enquiryID, imageID, err)
		} else {
			h.logger.Warn("GET /enquiries/{id}/images/{imageId} - Rejected: enquiry_id=%s, image_id=%d, status=%d",
				enquiryID, imageID, status)
		}
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", img.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Data); err != nil {
		h.logger.Warn("GET /enquiries/{id}/images/{imageId} - Write failed: %v", err)
		return
	}

	h.logger.Info("GET /enquiries/{id}/images/{imageId} - Image served: enquiry_id=%s, image_id=%d, bytes=%d",
		enquiryID, imageID, len(img.Data))
}
