package mocks

import (
	"strings"

	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing.
// By default a hash is "hashed_" + password.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

// Verify compares a hash with a password
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword != "" && strings.TrimPrefix(hashedPassword, "hashed_") == password
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
