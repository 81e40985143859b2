package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateFunc        func(ctx context.Context, session *domain.Session) error
	FindByIDFunc      func(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)
	ListActiveFunc    func(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Session, error)
	RotateFunc        func(ctx context.Context, sessionID uuid.UUID, oldHash, newHash string, usedAt time.Time) error
	RevokeFunc        func(ctx context.Context, sessionID uuid.UUID, at time.Time) error
	RevokeAllFunc     func(ctx context.Context, userID, keep uuid.UUID, at time.Time) (int64, error)
	DeleteExpiredFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Create creates a new session
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	return nil
}

// FindByID finds a session by ID
func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// ListActive lists the user's usable sessions
func (m *MockSessionRepository) ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Session, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, userID, now)
	}
	return nil, nil
}

// Rotate stores the new refresh token hash
func (m *MockSessionRepository) Rotate(ctx context.Context, sessionID uuid.UUID, oldHash, newHash string, usedAt time.Time) error {
	if m.RotateFunc != nil {
		return m.RotateFunc(ctx, sessionID, oldHash, newHash, usedAt)
	}
	return nil
}

// Revoke revokes a single session
func (m *MockSessionRepository) Revoke(ctx context.Context, sessionID uuid.UUID, at time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, sessionID, at)
	}
	return nil
}

// RevokeAll revokes the user's sessions except keep
func (m *MockSessionRepository) RevokeAll(ctx context.Context, userID, keep uuid.UUID, at time.Time) (int64, error) {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID, keep, at)
	}
	return 0, nil
}

// DeleteExpired purges dead sessions
func (m *MockSessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, cutoff)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
