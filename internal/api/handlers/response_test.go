package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	day := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("%w: bad", domain.ErrValidation), http.StatusBadRequest},
		{"holiday", &domain.HolidayError{Date: day, Name: "Christmas Day"}, http.StatusUnprocessableEntity},
		{"conflict", &domain.ConflictError{Date: day}, http.StatusConflict},
		{"transition", &domain.TransitionError{From: domain.StatusCompleted, To: domain.StatusCancelled}, http.StatusConflict},
		{"not found", fmt.Errorf("%w: id=x", domain.ErrEnquiryNotFound), http.StatusNotFound},
		{"forbidden", domain.ErrAccessDenied, http.StatusForbidden},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			status := RespondDomainError(rec, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.NotContains(t, body.Message, "pq:")
		})
	}
}

func TestRespondDomainError_Payloads(t *testing.T) {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("wrapped: %w", &domain.ConflictError{
		Date:      day,
		Requested: domain.TimeRange{Start: "10:00", End: "12:00"},
		Booked:    []domain.TimeRange{{Start: "09:00", End: "11:00"}},
	}))

	var conflict ConflictErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conflict))
	assert.Equal(t, "2026-11-02", conflict.Date)
	assert.Equal(t, []TimeRangeResponse{{StartTime: "09:00", EndTime: "11:00"}}, conflict.BookedSlots)

	rec = httptest.NewRecorder()
	RespondDomainError(rec, &domain.HolidayError{Date: day, Name: "Stocktake", Description: "Closed"})

	var holiday HolidayErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &holiday))
	assert.Equal(t, "Stocktake", holiday.HolidayName)
	assert.Equal(t, "Closed", holiday.HolidayDescription)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"oak"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "oak", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"oak","extra":1}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(r, &v))
}
