package mocks

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error)
	GenerateRefreshTokenFunc func(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token for the user
func (m *MockTokenService) GenerateAccessToken(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role, sessionID)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_%s_%s_%s", userID, role, sessionID), nil
}

// GenerateRefreshToken generates a refresh token for the user
func (m *MockTokenService) GenerateRefreshToken(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role, sessionID)
	}
	// Default behavior: unique per call so rotation changes the hash
	return fmt.Sprintf("refresh_token_%s_%s", sessionID, uuid.NewString()), nil
}

// ValidateAccessToken validates an access token and returns claims
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a refresh token and returns claims
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// AccessTTL returns the access token lifetime
func (m *MockTokenService) AccessTTL() time.Duration { return 15 * time.Minute }

// RefreshTTL returns the refresh token lifetime
func (m *MockTokenService) RefreshTTL() time.Duration { return 7 * 24 * time.Hour }

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
