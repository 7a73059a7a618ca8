package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRequestIDMinted(t *testing.T) {
	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Contains(t, w.Body.String(), id)
}

func TestRequestIDEchoed(t *testing.T) {
	supplied := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", supplied)

	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, req)

	require.Equal(t, supplied, w.Header().Get("X-Request-ID"))
}

func TestRequestIDRejectsNonUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", `injected"}`)

	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotEqual(t, `injected"}`, id)
}
