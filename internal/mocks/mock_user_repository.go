package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                 func(ctx context.Context, user *domain.User) error
	FindByEmailFunc            func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc            func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc               func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindBySocialFunc           func(ctx context.Context, provider, socialID string) (*domain.User, error)
	UpdateFunc                 func(ctx context.Context, user *domain.User) error
	ActivatePhoneFunc          func(ctx context.Context, userID uuid.UUID) error
	IncrementLoginAttemptsFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	LockFunc                   func(ctx context.Context, userID uuid.UUID, until time.Time) error
	RecordLoginFunc            func(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// FindBySocial finds a user by OAuth provider identity
func (m *MockUserRepository) FindBySocial(ctx context.Context, provider, socialID string) (*domain.User, error) {
	if m.FindBySocialFunc != nil {
		return m.FindBySocialFunc(ctx, provider, socialID)
	}
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// ActivatePhone activates user's phone verification
func (m *MockUserRepository) ActivatePhone(ctx context.Context, userID uuid.UUID) error {
	if m.ActivatePhoneFunc != nil {
		return m.ActivatePhoneFunc(ctx, userID)
	}
	return nil
}

// IncrementLoginAttempts bumps the failed login counter
func (m *MockUserRepository) IncrementLoginAttempts(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.IncrementLoginAttemptsFunc != nil {
		return m.IncrementLoginAttemptsFunc(ctx, userID)
	}
	return 1, nil
}

// Lock locks the account until the given time
func (m *MockUserRepository) Lock(ctx context.Context, userID uuid.UUID, until time.Time) error {
	if m.LockFunc != nil {
		return m.LockFunc(ctx, userID, until)
	}
	return nil
}

// RecordLogin stamps a successful login
func (m *MockUserRepository) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if m.RecordLoginFunc != nil {
		return m.RecordLoginFunc(ctx, userID, at)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
