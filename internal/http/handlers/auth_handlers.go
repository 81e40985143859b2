package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	otpSvc   domain.OTPService
	userRepo domain.UserRepository
	logger   *slog.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, userRepo domain.UserRepository, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		otpSvc:   otpSvc,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Phone, req.Password, req.Name, role)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"message": "User registered successfully. Please verify your phone number.",
		"user":    newUserView(user),
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, authView(result))
}

// VerifyMFA completes a login with the second factor
func (h *AuthHandlers) VerifyMFA(c *gin.Context) {
	var req MFAVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	result, err := h.authSvc.CompleteMFALogin(c.Request.Context(), req.Challenge, req.Code, clientInfo(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, authView(result))
}

// SendOTP handles OTP generation and sending. The reply does not reveal
// whether the number is registered.
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req OTPSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.userRepo.FindByPhone(ctx, req.Phone)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		h.logger.InfoContext(ctx, "otp requested for unknown phone")
	case err != nil:
		middleware.Fail(c, err)
		return
	case !user.PhoneVerified:
		if _, err := h.otpSvc.Generate(ctx, req.Phone); err != nil {
			middleware.Fail(c, err)
			return
		}
	}

	respond(c, http.StatusOK, gin.H{"message": "If the number is registered and unverified, a code has been sent"})
}

// VerifyOTP handles OTP verification
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	user, err := h.authSvc.VerifyPhone(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": "Phone number verified and activated successfully",
		"user":    newUserView(user),
	})
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, authView(result))
}

// Me handles getting user profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), a.UserID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newUserView(user))
}

// Logout revokes the session bound to the access token
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), middleware.CurrentSessionID(c)); err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// LogoutAll revokes every session of the caller
func (h *AuthHandlers) LogoutAll(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.authSvc.LogoutAll(c.Request.Context(), a.UserID); err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Logged out of all sessions"})
}

// Sessions lists the caller's live sessions
func (h *AuthHandlers) Sessions(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	sessions, err := h.authSvc.ListSessions(c.Request.Context(), a.UserID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newSessionViews(sessions, middleware.CurrentSessionID(c)))
}

// RevokeSession revokes one of the caller's sessions
func (h *AuthHandlers) RevokeSession(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.authSvc.RevokeSession(c.Request.Context(), a.UserID, sessionID); err != nil {
		middleware.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ChangePassword replaces the password and signs out other sessions
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), a.UserID, middleware.CurrentSessionID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Password changed; other sessions were signed out"})
}

// SetupMFA starts TOTP enrolment
func (h *AuthHandlers) SetupMFA(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	setup, err := h.authSvc.SetupMFA(c.Request.Context(), a.UserID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"secret": setup.Secret, "otpauth_url": setup.URL})
}

// EnableMFA confirms TOTP enrolment
func (h *AuthHandlers) EnableMFA(c *gin.Context) {
	h.mfaToggle(c, h.authSvc.EnableMFA, "MFA enabled")
}

// DisableMFA turns TOTP off
func (h *AuthHandlers) DisableMFA(c *gin.Context) {
	h.mfaToggle(c, h.authSvc.DisableMFA, "MFA disabled")
}

func (h *AuthHandlers) mfaToggle(c *gin.Context, apply func(ctx context.Context, userID uuid.UUID, code string) error, message string) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req MFACodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := apply(c.Request.Context(), a.UserID, req.Code); err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"message": message})
}
