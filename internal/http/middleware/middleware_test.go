package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/config"
	"github.com/vinay2003/Airion-backend-sub001/internal/mocks"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine mounts handlers on GET and POST /users/:id behind the error filter
func newTestEngine(production bool, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorFilter(discardLogger(), production))
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role, "session_id": CurrentSessionID(c)})
	})
	r.GET("/users/:id", handlers...)
	r.GET("/users/:id/bookings", handlers...)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	revokedAt := testNow.Add(-time.Minute)

	tests := []struct {
		name            string
		header          string
		session         *domain.Session
		validate        func(token string) (*domain.TokenClaims, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "valid token and live session",
			header:         "Bearer good",
			session:        &domain.Session{ID: sessionID, UserID: userID, ExpiresAt: testNow.Add(time.Hour)},
			expectedStatus: http.StatusOK,
		},
		{
			name:            "missing header",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "authorization header required",
		},
		{
			name:            "wrong scheme",
			header:          "Basic abc",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "invalid authorization header format",
		},
		{
			name:   "expired token",
			header: "Bearer old",
			validate: func(string) (*domain.TokenClaims, error) {
				return nil, domain.ErrTokenExpired
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: domain.ErrTokenExpired.Error(),
		},
		{
			name:            "revoked session",
			header:          "Bearer good",
			session:         &domain.Session{ID: sessionID, UserID: userID, ExpiresAt: testNow.Add(time.Hour), RevokedAt: &revokedAt},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: domain.ErrSessionRevoked.Error(),
		},
		{
			name:            "expired session",
			header:          "Bearer good",
			session:         &domain.Session{ID: sessionID, UserID: userID, ExpiresAt: testNow.Add(-time.Second)},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: domain.ErrSessionExpired.Error(),
		},
		{
			name:            "unknown session",
			header:          "Bearer good",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: domain.ErrSessionNotFound.Error(),
		},
		{
			name:            "session of another user",
			header:          "Bearer good",
			session:         &domain.Session{ID: sessionID, UserID: uuid.New(), ExpiresAt: testNow.Add(time.Hour)},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: domain.ErrTokenInvalid.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mocks.NewMockTokenService()
			tokens.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
				return &domain.TokenClaims{UserID: userID, Role: domain.RoleCustomer, SessionID: sessionID, TokenType: "access"}, nil
			}
			if tt.validate != nil {
				tokens.ValidateAccessTokenFunc = tt.validate
			}
			sessions := mocks.NewMockSessionRepository()
			sessions.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
				if tt.session != nil && id == tt.session.ID {
					return tt.session, nil
				}
				return nil, domain.ErrSessionNotFound
			}
			mw := NewAuthMW(tokens, sessions, clockwork.NewFakeClockAt(testNow))
			r := newTestEngine(false, mw.WithJWT())

			req := httptest.NewRequest(http.MethodGet, "/users/"+userID.String(), nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, userID.String(), body["user_id"])
				assert.Equal(t, sessionID.String(), body["session_id"])
				return
			}
			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, "Unauthorized", resp.Error)
		})
	}
}

func TestAuthMW_Optional(t *testing.T) {
	mw := NewAuthMW(mocks.NewMockTokenService(), mocks.NewMockSessionRepository(), clockwork.NewFakeClockAt(testNow))
	r := newTestEngine(false, mw.Optional())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/x", nil))
	assert.Equal(t, http.StatusOK, w.Code, "anonymous requests pass")

	req := httptest.NewRequest(http.MethodGet, "/users/x", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "a bad token is still rejected")
}

func TestCasbinMW_Enforce(t *testing.T) {
	owner := uuid.New()
	rules := []config.OwnershipRule{{Method: http.MethodGet, Path: "/users/:id/bookings", Source: "path", ParamName: "id"}}

	tests := []struct {
		name           string
		role           string
		userID         uuid.UUID
		path           string
		header         string
		expectedStatus int
	}{
		{name: "admin allowed anywhere", role: domain.RoleAdmin, userID: uuid.New(), path: "/users/" + owner.String() + "/bookings", expectedStatus: http.StatusOK},
		{name: "owner allowed through ownership rule", role: domain.RoleCustomer, userID: owner, path: "/users/" + owner.String() + "/bookings", expectedStatus: http.StatusOK},
		{name: "other customer denied", role: domain.RoleCustomer, userID: uuid.New(), path: "/users/" + owner.String() + "/bookings", expectedStatus: http.StatusForbidden},
		{name: "ownership only on configured route", role: domain.RoleCustomer, userID: owner, path: "/users/" + owner.String(), expectedStatus: http.StatusForbidden},
		{name: "x-user-id mismatch", role: domain.RoleAdmin, userID: owner, path: "/users/" + owner.String(), header: uuid.NewString(), expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policies := mocks.NewMockPolicyService()
			policies.CheckPermissionFunc = func(role, resource, action string) (bool, error) {
				switch role {
				case domain.RoleAdmin:
					return true, nil
				case ownerRole:
					return resource == "/users/"+owner.String()+"/bookings" && action == http.MethodGet, nil
				}
				return false, nil
			}
			setActor := func(c *gin.Context) {
				c.Set(ContextUserID, tt.userID)
				c.Set(ContextUserRole, tt.role)
			}
			r := newTestEngine(false, setActor, NewCasbinMW(policies, rules).Enforce())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("x-user-id", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCasbinMW_RequiresAuthentication(t *testing.T) {
	r := newTestEngine(false, NewCasbinMW(mocks.NewMockPolicyService(), nil).Enforce())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
