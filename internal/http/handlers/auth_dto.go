package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Role     string `json:"role" binding:"omitempty,max=20"` // defaults to customer
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MFAVerifyRequest completes a login that returned an MFA challenge
type MFAVerifyRequest struct {
	Challenge string `json:"challenge" binding:"required"`
	Code      string `json:"code" binding:"required,len=6,numeric"`
}

// OTPSendRequest asks for a new phone verification code
type OTPSendRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
	Code  string `json:"code" binding:"required,numeric,min=4,max=10"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72,nefield=OldPassword"`
}

// MFACodeRequest carries a TOTP code
type MFACodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

type userView struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"is_active"`
	PhoneVerified bool       `json:"phone_verified"`
	MFAEnabled    bool       `json:"mfa_enabled"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func newUserView(u *domain.User) *userView {
	return &userView{
		ID:            u.ID,
		Email:         u.Email,
		Phone:         u.Phone,
		Name:          u.Name,
		Role:          u.Role,
		IsActive:      u.IsActive,
		PhoneVerified: u.PhoneVerified,
		MFAEnabled:    u.MFAEnabled,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type tokenView struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	SessionID    uuid.UUID `json:"session_id"`
	User         *userView `json:"user,omitempty"`
}

type mfaChallengeView struct {
	MFARequired bool   `json:"mfa_required"`
	Challenge   string `json:"challenge"`
}

// authView renders either issued tokens or a pending MFA challenge
func authView(r *domain.AuthResult) any {
	if r.MFAChallenge != "" {
		return mfaChallengeView{MFARequired: true, Challenge: r.MFAChallenge}
	}
	v := tokenView{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    r.ExpiresIn,
		SessionID:    r.SessionID,
	}
	if r.User != nil {
		v.User = newUserView(r.User)
	}
	return v
}

type sessionView struct {
	ID         uuid.UUID  `json:"id"`
	IPAddress  string     `json:"ip_address,omitempty"`
	UserAgent  string     `json:"user_agent,omitempty"`
	DeviceName string     `json:"device_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	Current    bool       `json:"current"`
}

func newSessionViews(sessions []domain.Session, current uuid.UUID) []sessionView {
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, sessionView{
			ID:         s.ID,
			IPAddress:  s.IPAddress,
			UserAgent:  s.UserAgent,
			DeviceName: s.DeviceName,
			CreatedAt:  s.CreatedAt,
			ExpiresAt:  s.ExpiresAt,
			LastUsedAt: s.LastUsedAt,
			Current:    s.ID == current,
		})
	}
	return views
}
