package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/config"
)

// ownerRole is the policy subject granted to a caller acting on their own resource
const ownerRole = "owner"

// CasbinMW wraps the policy service and ownership rules for middleware
type CasbinMW struct {
	policies domain.PolicyService
	rules    []config.OwnershipRule
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policies domain.PolicyService, rules []config.OwnershipRule) *CasbinMW {
	return &CasbinMW{policies: policies, rules: rules}
}

// Enforce returns the casbin authorization middleware. It must run after
// the JWT middleware.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abortWithError(c, domain.ErrUnauthorized)
			return
		}

		headerUserID := c.GetHeader("x-user-id")
		if headerUserID != "" && headerUserID != actor.UserID.String() {
			abortWithError(c, domain.NewHTTPError(http.StatusForbidden, "header x-user-id does not match token user"))
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.policies.CheckPermission(actor.Role, path, method)
		if err != nil {
			abortWithError(c, err)
			return
		}

		// Admins pass on their role alone; owners fall back to the owner policy
		if !allowed && mw.isOwner(c, actor) {
			allowed, err = mw.policies.CheckPermission(ownerRole, path, method)
			if err != nil {
				abortWithError(c, err)
				return
			}
		}

		if !allowed {
			abortWithError(c, domain.ErrForbidden)
			return
		}

		c.Next()
	}
}

// isOwner matches the route pattern against the configured ownership rules
func (mw *CasbinMW) isOwner(c *gin.Context, actor domain.Actor) bool {
	for _, rule := range mw.rules {
		if rule.Path != c.FullPath() || rule.Method != c.Request.Method {
			continue
		}
		if owner, ok := claimedOwner(c, rule); ok && owner == actor.UserID {
			return true
		}
	}
	return false
}
