package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, phone string) (*domain.Otp, error)
	VerifyFunc    func(ctx context.Context, phone, code string) (bool, error)
	CanResendFunc func(ctx context.Context, phone string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate generates a new OTP for the given phone number
func (m *MockOTPService) Generate(ctx context.Context, phone string) (*domain.Otp, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, phone)
	}
	// Default behavior: return a mock OTP
	return &domain.Otp{
		ID:        uuid.New(),
		Phone:     phone,
		Otp:       "123456", // Mock OTP code for testing
		CreatedAt: time.Now(),
	}, nil
}

// Verify verifies an OTP code for the given phone number
func (m *MockOTPService) Verify(ctx context.Context, phone, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code)
	}
	// Default behavior: accept "123456" as valid OTP
	if code != "123456" {
		return false, domain.ErrOTPInvalid
	}
	return true, nil
}

// CanResend checks if an OTP can be resent for the given phone number
func (m *MockOTPService) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, phone)
	}
	// Default behavior: allow resend with no wait time
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
