package list_holidays

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/service/holidays"
	"github.com/m04kA/SMC-MillService/internal/service/holidays/models"
	"github.com/m04kA/SMC-MillService/pkg/logger"
	"github.com/m04kA/SMC-MillService/pkg/ptr"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) List(ctx context.Context) (*models.HolidayListResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.HolidayListResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := &serviceMock{}
	svc.On("List", mock.Anything).Return(&models.HolidayListResponse{Holidays: []models.HolidayResponse{
		{MonthDay: ptr.Ptr("12-25"), Name: "Christmas Day", Source: models.SourceConfig},
		{ID: ptr.Ptr(int64(4)), Date: ptr.Ptr("2026-11-20"), Name: "Stocktake", Source: models.SourceDatabase},
	}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/services/holidays", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.HolidayListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Holidays, 2)
	assert.Nil(t, body.Holidays[0].ID)
	assert.Equal(t, int64(4), *body.Holidays[1].ID)
}

func TestHandle_Error(t *testing.T) {
	svc := &serviceMock{}
	svc.On("List", mock.Anything).Return(nil, holidays.ErrInternal)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/services/holidays", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
