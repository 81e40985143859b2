package mocks

import "github.com/vinay2003/Airion-backend-sub001/domain"

// MockTOTPService implements domain.TOTPService interface for testing.
// By default the only valid code is "123456".
type MockTOTPService struct {
	GenerateFunc func(accountName string) (*domain.MFASetup, error)
	ValidateFunc func(secret, code string) bool
}

// NewMockTOTPService creates a new MockTOTPService with default behaviors
func NewMockTOTPService() *MockTOTPService {
	return &MockTOTPService{}
}

// Generate creates a new secret
func (m *MockTOTPService) Generate(accountName string) (*domain.MFASetup, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(accountName)
	}
	return &domain.MFASetup{
		Secret: "JBSWY3DPEHPK3PXP",
		URL:    "otpauth://totp/Airion:" + accountName + "?secret=JBSWY3DPEHPK3PXP&issuer=Airion",
	}, nil
}

// Validate checks a code against a secret
func (m *MockTOTPService) Validate(secret, code string) bool {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(secret, code)
	}
	return secret != "" && code == "123456"
}

// Compile-time interface compliance verification
var _ domain.TOTPService = (*MockTOTPService)(nil)
