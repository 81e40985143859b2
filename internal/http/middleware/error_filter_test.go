package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

type signupBody struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
}

func errorEngine(production bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorFilter(discardLogger(), production))
	r.GET("/conflict", func(c *gin.Context) {
		Fail(c, fmt.Errorf("failed to create vendor: %w", domain.ErrVendorExists))
	})
	r.GET("/locked", func(c *gin.Context) {
		Fail(c, &domain.LockoutError{RetryAfter: 90 * time.Second})
	})
	r.GET("/boom", func(c *gin.Context) {
		Fail(c, errors.New("connection reset by peer"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("nil map write")
	})
	r.POST("/signup", func(c *gin.Context) {
		var body signupBody
		if err := c.ShouldBindJSON(&body); err != nil {
			BindError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return r
}

func TestErrorFilter(t *testing.T) {
	tests := []struct {
		name            string
		production      bool
		method          string
		path            string
		body            string
		expectedStatus  int
		expectedMessage string
		expectStack     bool
		expectedDetail  string
	}{
		{
			name:            "wrapped sentinel",
			method:          http.MethodGet,
			path:            "/conflict",
			expectedStatus:  http.StatusConflict,
			expectedMessage: domain.ErrVendorExists.Error(),
		},
		{
			name:            "unknown error in development shows detail",
			method:          http.MethodGet,
			path:            "/boom",
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
			expectedDetail:  "connection reset by peer",
		},
		{
			name:            "unknown error in production hides detail",
			production:      true,
			method:          http.MethodGet,
			path:            "/boom",
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
		{
			name:            "panic in development",
			method:          http.MethodGet,
			path:            "/panic",
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
			expectStack:     true,
			expectedDetail:  "panic: nil map write",
		},
		{
			name:            "panic in production",
			production:      true,
			method:          http.MethodGet,
			path:            "/panic",
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
		{
			name:            "validation failure",
			production:      true,
			method:          http.MethodPost,
			path:            "/signup",
			body:            `{"email":"not-an-email","name":"A"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Email must be a valid email; Name must be at least 2",
		},
		{
			name:            "malformed json",
			method:          http.MethodPost,
			path:            "/signup",
			body:            `{"email":`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := errorEngine(tt.production)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, http.StatusText(tt.expectedStatus), resp.Error)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, tt.path, resp.Path)
			assert.Equal(t, tt.method, resp.Method)
			assert.NotEmpty(t, resp.Timestamp)
			if tt.expectStack {
				assert.NotEmpty(t, resp.Stack)
				assert.Contains(t, strings.Join(resp.Stack, "\n"), "goroutine")
			} else {
				assert.Empty(t, resp.Stack)
			}
			assert.Equal(t, tt.expectedDetail, resp.Detail)
		})
	}
}

func TestErrorFilter_LogsByStatusAndMode(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		path       string
		logged     bool
	}{
		{name: "4xx hidden in production", production: true, path: "/conflict", logged: false},
		{name: "4xx logged in development", production: false, path: "/conflict", logged: true},
		{name: "5xx logged in production", production: true, path: "/boom", logged: true},
		{name: "5xx logged in development", production: false, path: "/boom", logged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(ErrorFilter(slog.New(slog.NewJSONHandler(&buf, nil)), tt.production))
			r.GET("/conflict", func(c *gin.Context) { Fail(c, domain.ErrVendorExists) })
			r.GET("/boom", func(c *gin.Context) { Fail(c, errors.New("connection reset by peer")) })

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.logged, strings.Contains(buf.String(), `"path":"`+tt.path+`"`), buf.String())
		})
	}
}

func TestErrorFilter_LockoutSetsRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	errorEngine(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locked", nil))

	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Equal(t, "90", w.Header().Get("Retry-After"))
	assert.Contains(t, decodeEnvelope(t, w).Message, "retry after 90 seconds")
}

func TestErrorFilter_CountsErrors(t *testing.T) {
	before := testutil.ToFloat64(HTTPErrorsTotal.WithLabelValues("409"))

	w := httptest.NewRecorder()
	errorEngine(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPErrorsTotal.WithLabelValues("409")))
}

func TestErrorFilter_LeavesWrittenResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorFilter(discardLogger(), false))
	r.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusAccepted, "queued")
		_ = c.Error(errors.New("late failure"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "queued", w.Body.String())
}
