package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"docflow/internal/handler"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }
func (f fakePinger) Ping(context.Context) error        { return f.err }

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		db         fakePinger
		cache      handler.CachePinger
		wantStatus int
	}{
		{name: "db ok, no cache", db: fakePinger{}, cache: nil, wantStatus: http.StatusOK},
		{name: "db ok, cache ok", db: fakePinger{}, cache: fakePinger{}, wantStatus: http.StatusOK},
		{name: "db down", db: fakePinger{err: errors.New("down")}, cache: nil, wantStatus: http.StatusServiceUnavailable},
		{name: "cache down", db: fakePinger{}, cache: fakePinger{err: errors.New("down")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db, tt.cache)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)

			h.Readiness(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(fakePinger{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
