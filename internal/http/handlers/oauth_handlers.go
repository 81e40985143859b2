package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

const oauthStatePrefix = "oauth:state:"

// OAuthHandlers drives the Google and GitHub authorization-code logins
type OAuthHandlers struct {
	authSvc         domain.AuthService
	providers       map[string]domain.OAuthProvider
	states          domain.EphemeralStore
	stateTTL        time.Duration
	successRedirect string
}

// NewOAuthHandlers creates OAuth handlers. successRedirect may be empty,
// in which case callbacks answer with JSON.
func NewOAuthHandlers(authSvc domain.AuthService, providers map[string]domain.OAuthProvider, states domain.EphemeralStore, stateTTL time.Duration, successRedirect string) *OAuthHandlers {
	return &OAuthHandlers{
		authSvc:         authSvc,
		providers:       providers,
		states:          states,
		stateTTL:        stateTTL,
		successRedirect: successRedirect,
	}
}

func (h *OAuthHandlers) provider(c *gin.Context) (domain.OAuthProvider, bool) {
	p, ok := h.providers[c.Param("provider")]
	if !ok {
		middleware.Fail(c, domain.ErrOAuthProviderUnknown)
	}
	return p, ok
}

// Redirect sends the browser to the provider's consent page
func (h *OAuthHandlers) Redirect(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}

	state := uuid.NewString()
	if err := h.states.Put(c.Request.Context(), oauthStatePrefix+state, p.Name(), h.stateTTL); err != nil {
		middleware.Fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

// Callback consumes the state, exchanges the code and signs the user in
func (h *OAuthHandlers) Callback(c *gin.Context) {
	p, ok := h.provider(c)
	if !ok {
		return
	}
	if reason := c.Query("error"); reason != "" {
		middleware.Fail(c, domain.BadRequest("oauth login declined: "+reason))
		return
	}
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		middleware.Fail(c, domain.BadRequest("state and code are required"))
		return
	}

	ctx := c.Request.Context()
	owner, err := h.states.Take(ctx, oauthStatePrefix+state)
	if errors.Is(err, domain.ErrResourceNotFound) || (err == nil && owner != p.Name()) {
		middleware.Fail(c, domain.ErrOAuthStateInvalid)
		return
	}
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	profile, err := p.Exchange(ctx, code)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	result, err := h.authSvc.SocialLogin(ctx, *profile, clientInfo(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	if h.successRedirect == "" {
		respond(c, http.StatusOK, authView(result))
		return
	}
	c.Redirect(http.StatusFound, h.successRedirect+"#"+fragment(result).Encode())
}

// fragment encodes the login result for the success redirect
func fragment(r *domain.AuthResult) url.Values {
	v := url.Values{}
	if r.MFAChallenge != "" {
		v.Set("mfa_challenge", r.MFAChallenge)
		return v
	}
	v.Set("access_token", r.AccessToken)
	v.Set("refresh_token", r.RefreshToken)
	v.Set("token_type", "Bearer")
	v.Set("expires_in", strconv.FormatInt(r.ExpiresIn, 10))
	return v
}
