package list_enquiries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/api/middleware"
	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries/models"
	"github.com/m04kA/SMC-MillService/pkg/logger"
	"github.com/m04kA/SMC-MillService/pkg/ptr"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) List(ctx context.Context, req *models.ListEnquiriesRequest, actor domain.Actor) (*models.EnquiryListResponse, error) {
	args := m.Called(ctx, req, actor)
	resp, _ := args.Get(0).(*models.EnquiryListResponse)
	return resp, args.Error(1)
}

func TestFromQuery(t *testing.T) {
	req, err := FromQuery(url.Values{
		"status":     {"SCHEDULED"},
		"date":       {"2026-11-02"},
		"customerId": {"7"},
		"limit":      {"20"},
		"offset":     {"40"},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.ListEnquiriesRequest{
		CustomerID: ptr.Ptr(int64(7)),
		Status:     ptr.Ptr("SCHEDULED"),
		Date:       ptr.Ptr("2026-11-02"),
		Limit:      20,
		Offset:     40,
	}, req)

	empty, err := FromQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, &models.ListEnquiriesRequest{}, empty)

	for _, bad := range []url.Values{
		{"customerId": {"abc"}},
		{"customerId": {"0"}},
		{"limit": {"-1"}},
		{"offset": {"x"}},
	} {
		_, err := FromQuery(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad.Encode())
	}
}

func TestHandle(t *testing.T) {
	staff := domain.Actor{ID: 1, Role: domain.RoleStaff}

	t.Run("ok", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("List", mock.Anything, &models.ListEnquiriesRequest{Status: ptr.Ptr("RECEIVED")}, staff).
			Return(&models.EnquiryListResponse{Enquiries: []models.EnquiryResponse{{ID: "enq-1"}}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/services/admin/enquiries?status=RECEIVED", nil)
		req = req.WithContext(middleware.WithActor(req.Context(), staff))
		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Handle(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body models.EnquiryListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Enquiries, 1)
		svc.AssertExpectations(t)
	})

	t.Run("invalid query", func(t *testing.T) {
		svc := &serviceMock{}
		req := httptest.NewRequest(http.MethodGet, "/services/admin/enquiries?limit=many", nil)
		req = req.WithContext(middleware.WithActor(req.Context(), staff))
		rec := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service errors", func(t *testing.T) {
		for err, status := range map[error]int{
			enquiries.ErrInvalidInput: http.StatusBadRequest,
			enquiries.ErrInternal:     http.StatusInternalServerError,
		} {
			svc := &serviceMock{}
			svc.On("List", mock.Anything, mock.Anything, staff).Return(nil, err)

			req := httptest.NewRequest(http.MethodGet, "/services/admin/enquiries", nil)
			req = req.WithContext(middleware.WithActor(req.Context(), staff))
			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, req)
			assert.Equal(t, status, rec.Code)
		}
	})
}
