// Package handlers общие функции HTTP-слоя: разбор тела и ответы в JSON
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

const (
	msgInternalError = "internal server error"

	// maxJSONBody ограничение размера JSON тела запроса
	maxJSONBody = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HolidayErrorResponse ответ 422: день закрыт
type HolidayErrorResponse struct {
	ErrorResponse
	Date               string `json:"date"`
	HolidayName        string `json:"holidayName"`
	HolidayDescription string `json:"holidayDescription,omitempty"`
}

// TimeRangeResponse интервал времени
type TimeRangeResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ConflictErrorResponse ответ 409: интервал занят, с текущими бронями на дату
type ConflictErrorResponse struct {
	ErrorResponse
	Date        string              `json:"date"`
	BookedSlots []TimeRangeResponse `json:"bookedSlots"`
}

// DecodeJSON разбирает JSON тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError 500 без подробностей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError отображает ошибку бизнес-логики в HTTP ответ и возвращает статус.
// Неизвестные ошибки превращаются в 500 без подробностей.
func RespondDomainError(w http.ResponseWriter, err error) int {
	var (
		holidayErr  *domain.HolidayError
		conflictErr *domain.ConflictError
	)

	switch {
	case errors.As(err, &holidayErr):
		status := http.StatusUnprocessableEntity
		RespondJSON(w, status, HolidayErrorResponse{
			ErrorResponse:      ErrorResponse{Code: status, Message: err.Error()},
			Date:               holidayErr.Date.Format(domain.DateFormat),
			HolidayName:        holidayErr.Name,
			HolidayDescription: holidayErr.Description,
		})
		return status

	case errors.As(err, &conflictErr):
		status := http.StatusConflict
		RespondJSON(w, status, ConflictErrorResponse{
			ErrorResponse: ErrorResponse{Code: status, Message: domain.ErrConflict.Error()},
			Date:          conflictErr.Date.Format(domain.DateFormat),
			BookedSlots:   FromTimeRanges(conflictErr.Booked),
		})
		return status

	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, err.Error())
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		RespondError(w, http.StatusConflict, err.Error())
		return http.StatusConflict

	case errors.Is(err, domain.ErrEnquiryNotFound):
		RespondNotFound(w, err.Error())
		return http.StatusNotFound

	case errors.Is(err, domain.ErrAccessDenied):
		RespondForbidden(w, err.Error())
		return http.StatusForbidden

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}

// FromTimeRanges конвертирует интервалы в DTO; nil превращается в пустой список
func FromTimeRanges(ranges []domain.TimeRange) []TimeRangeResponse {
	out := make([]TimeRangeResponse, len(ranges))
	for i, r := range ranges {
		out[i] = TimeRangeResponse{StartTime: r.Start.String(), EndTime: r.End.String()}
	}
	return out
}
