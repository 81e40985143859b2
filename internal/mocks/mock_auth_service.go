package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc         func(ctx context.Context, email, phone, password, name, role string) (*domain.User, error)
	LoginFunc            func(ctx context.Context, email, password string, client domain.ClientInfo) (*domain.AuthResult, error)
	CompleteMFALoginFunc func(ctx context.Context, challenge, code string, client domain.ClientInfo) (*domain.AuthResult, error)
	SocialLoginFunc      func(ctx context.Context, profile domain.SocialProfile, client domain.ClientInfo) (*domain.AuthResult, error)
	RefreshTokenFunc     func(ctx context.Context, refreshToken string, client domain.ClientInfo) (*domain.AuthResult, error)
	LogoutFunc           func(ctx context.Context, sessionID uuid.UUID) error
	LogoutAllFunc        func(ctx context.Context, userID uuid.UUID) error
	ListSessionsFunc     func(ctx context.Context, userID uuid.UUID) ([]domain.Session, error)
	RevokeSessionFunc    func(ctx context.Context, userID, sessionID uuid.UUID) error
	VerifyPhoneFunc      func(ctx context.Context, phone, code string) (*domain.User, error)
	ChangePasswordFunc   func(ctx context.Context, userID, sessionID uuid.UUID, oldPassword, newPassword string) error
	SetupMFAFunc         func(ctx context.Context, userID uuid.UUID) (*domain.MFASetup, error)
	EnableMFAFunc        func(ctx context.Context, userID uuid.UUID, code string) error
	DisableMFAFunc       func(ctx context.Context, userID uuid.UUID, code string) error
	GetUserProfileFunc   func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func mockAuthResult(user *domain.User) *domain.AuthResult {
	sessionID := uuid.New()
	return &domain.AuthResult{
		User:         user,
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
		SessionID:    sessionID,
		ExpiresIn:    900,
	}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, email, phone, password, name, role string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, phone, password, name, role)
	}
	// Default behavior: return a mock user
	return &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Phone:        phone,
		Name:         name,
		PasswordHash: "hashed_" + password,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string, client domain.ClientInfo) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, client)
	}
	return mockAuthResult(&domain.User{ID: uuid.New(), Email: email, Role: domain.RoleCustomer, IsActive: true}), nil
}

// CompleteMFALogin finishes a login that required a second factor
func (m *MockAuthService) CompleteMFALogin(ctx context.Context, challenge, code string, client domain.ClientInfo) (*domain.AuthResult, error) {
	if m.CompleteMFALoginFunc != nil {
		return m.CompleteMFALoginFunc(ctx, challenge, code, client)
	}
	return nil, domain.ErrMFAChallengeInvalid
}

// SocialLogin logs in with an OAuth profile
func (m *MockAuthService) SocialLogin(ctx context.Context, profile domain.SocialProfile, client domain.ClientInfo) (*domain.AuthResult, error) {
	if m.SocialLoginFunc != nil {
		return m.SocialLoginFunc(ctx, profile, client)
	}
	return mockAuthResult(&domain.User{ID: uuid.New(), Email: profile.Email, Role: domain.RoleCustomer, IsActive: true}), nil
}

// RefreshToken rotates a refresh token
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string, client domain.ClientInfo) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken, client)
	}
	return nil, domain.ErrTokenInvalid
}

// Logout ends a session
func (m *MockAuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

// LogoutAll ends every session of a user
func (m *MockAuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

// ListSessions lists a user's active sessions
func (m *MockAuthService) ListSessions(ctx context.Context, userID uuid.UUID) ([]domain.Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx, userID)
	}
	return nil, nil
}

// RevokeSession revokes one of a user's sessions
func (m *MockAuthService) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	if m.RevokeSessionFunc != nil {
		return m.RevokeSessionFunc(ctx, userID, sessionID)
	}
	return nil
}

// VerifyPhone verifies a phone with an OTP
func (m *MockAuthService) VerifyPhone(ctx context.Context, phone, code string) (*domain.User, error) {
	if m.VerifyPhoneFunc != nil {
		return m.VerifyPhoneFunc(ctx, phone, code)
	}
	return &domain.User{ID: uuid.New(), Phone: phone, PhoneVerified: true, IsActive: true}, nil
}

// ChangePassword changes a user's password
func (m *MockAuthService) ChangePassword(ctx context.Context, userID, sessionID uuid.UUID, oldPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, sessionID, oldPassword, newPassword)
	}
	return nil
}

// SetupMFA starts MFA enrolment
func (m *MockAuthService) SetupMFA(ctx context.Context, userID uuid.UUID) (*domain.MFASetup, error) {
	if m.SetupMFAFunc != nil {
		return m.SetupMFAFunc(ctx, userID)
	}
	return &domain.MFASetup{Secret: "JBSWY3DPEHPK3PXP", URL: "otpauth://totp/Airion"}, nil
}

// EnableMFA confirms MFA enrolment
func (m *MockAuthService) EnableMFA(ctx context.Context, userID uuid.UUID, code string) error {
	if m.EnableMFAFunc != nil {
		return m.EnableMFAFunc(ctx, userID, code)
	}
	return nil
}

// DisableMFA turns MFA off
func (m *MockAuthService) DisableMFA(ctx context.Context, userID uuid.UUID, code string) error {
	if m.DisableMFAFunc != nil {
		return m.DisableMFAFunc(ctx, userID, code)
	}
	return nil
}

// GetUserProfile returns a user's profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "user@example.com", Role: domain.RoleCustomer, IsActive: true}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
