package delete_holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-MillService/internal/service/holidays"
	"github.com/m04kA/SMC-MillService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func serve(svc *serviceMock, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/services/admin/holidays/{id}", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &serviceMock{}
	svc.On("Delete", mock.Anything, int64(4)).Return(nil)
	svc.On("Delete", mock.Anything, int64(5)).Return(holidays.ErrHolidayNotFound)
	svc.On("Delete", mock.Anything, int64(6)).Return(holidays.ErrInternal)

	assert.Equal(t, http.StatusNoContent, serve(svc, "/services/admin/holidays/4").Code)
	assert.Equal(t, http.StatusNotFound, serve(svc, "/services/admin/holidays/5").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(svc, "/services/admin/holidays/6").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/services/admin/holidays/x").Code)
	svc.AssertExpectations(t)
}
