package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"docflow/internal/middleware"
)

func newAPIKeyRouter(t *testing.T, key string) *gin.Engine {
	t.Helper()
	hash := ""
	if key != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	r := gin.New()
	r.Use(middleware.RequireAPIKey(hash))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		setup      func(*http.Request)
		wantStatus int
	}{
		{
			name:       "disabled when no hash configured",
			configured: "",
			setup:      func(*http.Request) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid X-API-Key header",
			configured: "s3cret",
			setup:      func(r *http.Request) { r.Header.Set("X-API-Key", "s3cret") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			configured: "s3cret",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer s3cret") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid query parameter",
			configured: "s3cret",
			setup: func(r *http.Request) {
				q := r.URL.Query()
				q.Set("api_key", "s3cret")
				r.URL.RawQuery = q.Encode()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key",
			configured: "s3cret",
			setup:      func(r *http.Request) { r.Header.Set("X-API-Key", "guess") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing key",
			configured: "s3cret",
			setup:      func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAPIKeyRouter(t, tt.configured)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
			tt.setup(req)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	var seen string
	r.GET("/test", func(c *gin.Context) {
		seen = c.GetString(middleware.ContextKeyRequestID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", "fixed-id")
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
