package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vinay2003/Airion-backend-sub001/internal/platform/correlation"
)

func requestIDEngine(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		*seen, _ = correlation.ID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when absent", incoming: ""},
		{name: "propagated when present", incoming: "req-123", keep: true},
		{name: "replaced when oversized", incoming: strings.Repeat("x", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			requestIDEngine(&seen).ServeHTTP(w, req)

			echoed := w.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, echoed)
			assert.Equal(t, echoed, seen, "context carries the echoed id")
			if tt.keep {
				assert.Equal(t, tt.incoming, echoed)
			} else {
				assert.NotEqual(t, tt.incoming, echoed)
			}
		})
	}
}

func TestHTTPMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	r := gin.New()
	r.Use(metrics.Middleware())
	r.GET("/vendors/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/vendors/a", "/vendors/b", "/health", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/vendors/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/health", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.InFlightGauge))
}
