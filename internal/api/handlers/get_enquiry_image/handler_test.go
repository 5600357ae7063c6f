package get_enquiry_image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/internal/api/middleware"
	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/internal/service/enquiries"
	"github.com/m04kA/SMC-MillService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) GetImage(ctx context.Context, id string, imageID int64, actor domain.Actor) (*domain.Image, error) {
	args := m.Called(ctx, id, imageID, actor)
	img, _ := args.Get(0).(*domain.Image)
	return img, args.Error(1)
}

var staff = domain.Actor{ID: 1, Role: domain.RoleStaff}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/services/enquiries/{id}/images/{imageId}", h.Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), staff))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetImage", mock.Anything, "enq-1", int64(3), staff).Return(&domain.Image{
		ImageMeta: domain.ImageMeta{ID: 3, FileName: "pile.png", ContentType: "image/png", SizeBytes: 3},
		Data:      []byte{1, 2, 3},
	}, nil)

	rec := serve(NewHandler(svc, logger.NewNop()), "/services/enquiries/enq-1/images/3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "3", rec.Header().Get("Content-Length"))
	assert.Equal(t, []byte{1, 2, 3}, rec.Body.Bytes())
}

func TestHandle_Errors(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		svc := &serviceMock{}
		rec := serve(NewHandler(svc, logger.NewNop()), "/services/enquiries/enq-1/images/abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("GetImage", mock.Anything, "enq-1", int64(9), staff).Return(nil, enquiries.ErrImageNotFound)
		rec := serve(NewHandler(svc, logger.NewNop()), "/services/enquiries/enq-1/images/9")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
