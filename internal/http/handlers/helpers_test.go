package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

var testSessionID = uuid.MustParse("5f0c3a1e-7b8d-4c2e-9a41-2d6f8e0b1c34")

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
	r := gin.New()
	r.Use(middleware.ErrorFilter(slog.New(slog.NewTextHandler(io.Discard, nil)), false))
	return r
}

// as stands in for the JWT middleware
func as(a domain.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, a.UserID)
		c.Set(middleware.ContextUserRole, a.Role)
		c.Set(middleware.ContextSessionID, testSessionID)
		c.Next()
	}
}

func customer() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}
}

func admin() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
}

// perform sends body as JSON; a string body is sent verbatim
func perform(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// data returns the "data" object of a success response
func data(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	d, ok := decodeBody(t, w)["data"].(map[string]any)
	require.True(t, ok, "data object missing: %s", w.Body.String())
	return d
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, w)["message"].(string)
	return msg
}

func newRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
