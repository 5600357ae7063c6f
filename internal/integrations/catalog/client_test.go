package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MillService/pkg/logger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/wood-types/oak":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"code":"oak","label":"English Oak","hardwood":true}`))
		case "/internal/wood-types/broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		case "/internal/wood-types/garbage":
			_, _ = w.Write([]byte("{"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetWoodType(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL+"/", time.Second, logger.NewNop())

	wt, err := c.GetWoodType(context.Background(), "Oak")
	require.NoError(t, err)
	assert.Equal(t, "English Oak", wt.Label)
	assert.True(t, wt.Hardwood)

	_, err = c.GetWoodType(context.Background(), "teak")
	assert.ErrorIs(t, err, ErrWoodTypeNotFound)

	_, err = c.GetWoodType(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = c.GetWoodType(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetWoodType_NoBaseURL(t *testing.T) {
	c := NewClient("", time.Second, logger.NewNop())
	_, err := c.GetWoodType(context.Background(), "oak")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetWoodTypeLabelWithGracefulDegradation(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	label, err := c.GetWoodTypeLabelWithGracefulDegradation(context.Background(), "oak")
	require.NoError(t, err)
	assert.Equal(t, "English Oak", label)

	label, err = c.GetWoodTypeLabelWithGracefulDegradation(context.Background(), "teak")
	require.NoError(t, err)
	assert.Empty(t, label)

	_, err = c.GetWoodTypeLabelWithGracefulDegradation(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
