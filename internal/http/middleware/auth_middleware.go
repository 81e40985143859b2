package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// AuthMiddleware creates authentication middleware. The access token must
// be valid and its session live.
func AuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, clock clockwork.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, domain.NewHTTPError(http.StatusUnauthorized, "authorization header required"))
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			abortWithError(c, domain.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format"))
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			abortWithError(c, err)
			return
		}

		// Revoked sessions invalidate their access tokens immediately
		session, err := sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if session.UserID != claims.UserID {
			abortWithError(c, domain.ErrTokenInvalid)
			return
		}
		if session.RevokedAt != nil {
			abortWithError(c, domain.ErrSessionRevoked)
			return
		}
		if !session.Active(clock.Now()) {
			abortWithError(c, domain.ErrSessionExpired)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextSessionID, claims.SessionID)

		c.Next()
	}
}
