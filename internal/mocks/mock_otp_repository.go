package mocks

import (
	"context"
	"time"

	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockOtpRepository implements domain.OtpRepository interface for testing
type MockOtpRepository struct {
	ReplaceFunc         func(ctx context.Context, otp *domain.Otp) error
	FindByPhoneFunc     func(ctx context.Context, phone string) (*domain.Otp, error)
	DeleteByPhoneFunc   func(ctx context.Context, phone string) error
	DeleteOlderThanFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

// Replace stores the phone's live code
func (m *MockOtpRepository) Replace(ctx context.Context, otp *domain.Otp) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, otp)
	}
	return nil
}

// FindByPhone returns the phone's live code
func (m *MockOtpRepository) FindByPhone(ctx context.Context, phone string) (*domain.Otp, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrOTPNotFound
}

// DeleteByPhone removes the phone's code
func (m *MockOtpRepository) DeleteByPhone(ctx context.Context, phone string) error {
	if m.DeleteByPhoneFunc != nil {
		return m.DeleteByPhoneFunc(ctx, phone)
	}
	return nil
}

// DeleteOlderThan purges stale codes
func (m *MockOtpRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFunc != nil {
		return m.DeleteOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.OtpRepository = (*MockOtpRepository)(nil)
