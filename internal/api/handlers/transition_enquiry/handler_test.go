package transition_enquiry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/api/middleware"
	"github.com/m04kA/SMC-MillService/internal/domain"
	transitionEnquiry "github.com/m04kA/SMC-MillService/internal/usecase/transition_enquiry"
	"github.com/m04kA/SMC-MillService/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *transitionEnquiry.Request) (*transitionEnquiry.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*transitionEnquiry.Response)
	return resp, args.Error(1)
}

var (
	staff    = domain.Actor{ID: 1, Role: domain.RoleStaff}
	customer = domain.Actor{ID: 7, Role: domain.RoleCustomer}
)

func newRouter(uc *useCaseMock) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/services/enquiries/{id}/cancel", NewHandler(uc, "cancel", logger.NewNop()).Handle)
	r.HandleFunc("/services/admin/enquiries/{id}/{action}", NewHandler(uc, "", logger.NewNop()).Handle)
	return r
}

func do(r *mux.Router, actor domain.Actor, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPut, target, nil)
	} else {
		req = httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	}
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func proposed() *transitionEnquiry.Response {
	slot := domain.Reservation{
		Date:  time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		Range: domain.TimeRange{Start: "13:00", End: "15:00"},
	}
	return &transitionEnquiry.Response{
		From: domain.StatusUnderReview,
		Enquiry: &domain.Enquiry{
			ID:            "enq-1",
			CustomerID:    7,
			RequestedDate: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
			RequestedTime: "09:00",
			SlotMinutes:   120,
			State:         domain.AlternateProposed{Slot: slot},
		},
	}
}

func TestHandle_AdminActionFromPath(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *transitionEnquiry.Request) bool {
		return req.EnquiryID == "enq-1" &&
			req.Action == "propose-time" &&
			req.Actor == staff &&
			*req.Date == "2026-11-03" && *req.StartTime == "13:00" && *req.EndTime == "15:00" &&
			req.EstimatedCost.Equal(decimal.RequireFromString("150"))
	})).Return(proposed(), nil)

	rec := do(newRouter(uc), staff, "/services/admin/enquiries/enq-1/propose-time",
		`{"date":"2026-11-03","startTime":"13:00","endTime":"15:00","estimatedCost":"150"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ALTERNATE_TIME_PROPOSED", body["status"])
	assert.Equal(t, "2026-11-03", body["proposedDate"])
	assert.Equal(t, "13:00", body["proposedStartTime"])
	uc.AssertExpectations(t)
}

func TestHandle_FixedActionWithoutBody(t *testing.T) {
	uc := &useCaseMock{}
	resp := proposed()
	resp.Enquiry.State = domain.Cancelled{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *transitionEnquiry.Request) bool {
		return req.Action == "cancel" && req.Actor == customer && req.Date == nil
	})).Return(resp, nil)

	rec := do(newRouter(uc), customer, "/services/enquiries/enq-1/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	conflict := &domain.ConflictError{
		Date:      time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		Requested: domain.TimeRange{Start: "13:00", End: "15:00"},
		Booked:    []domain.TimeRange{{Start: "13:00", End: "15:00"}},
	}
	transition := &domain.TransitionError{From: domain.StatusScheduled, To: domain.StatusCancelled, Reason: "customer may not cancel"}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"slot conflict", conflict, http.StatusConflict},
		{"illegal transition", transition, http.StatusConflict},
		{"not found", domain.ErrEnquiryNotFound, http.StatusNotFound},
		{"access denied", domain.ErrAccessDenied, http.StatusForbidden},
		{"past slot", transitionEnquiry.ErrSlotInPast, http.StatusBadRequest},
		{"internal", transitionEnquiry.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			rec := do(newRouter(uc), staff, "/services/admin/enquiries/enq-1/propose-time", `{}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &useCaseMock{}
	rec := do(newRouter(uc), staff, "/services/admin/enquiries/enq-1/schedule", `{"date":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
