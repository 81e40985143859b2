package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/mocks"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// authMocks bundles the collaborators of the auth service
type authMocks struct {
	userRepo    *mocks.MockUserRepository
	sessionRepo *mocks.MockSessionRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	totpSvc     *mocks.MockTOTPService
	ephemeral   *mocks.MockEphemeralStore
	audit       *mocks.MockAuditLogger
	clock       *clockwork.FakeClock
}

func newAuthMocks(t *testing.T) *authMocks {
	t.Helper()

	return &authMocks{
		userRepo:    mocks.NewMockUserRepository(),
		sessionRepo: mocks.NewMockSessionRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
		totpSvc:     mocks.NewMockTOTPService(),
		ephemeral:   mocks.NewMockEphemeralStore(),
		audit:       mocks.NewMockAuditLogger(),
		clock:       clockwork.NewFakeClockAt(testNow),
	}
}

// testAuthConfig locks after three failures for fifteen minutes
func testAuthConfig() AuthConfig {
	return AuthConfig{
		MaxLoginAttempts: 3,
		LockoutDuration:  15 * time.Minute,
		MFAChallengeTTL:  5 * time.Minute,
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, m *authMocks) domain.AuthService {
	t.Helper()

	if m == nil {
		m = newAuthMocks(t)
	}
	return NewAuthService(m.userRepo, m.sessionRepo, m.passwordSvc, m.tokenSvc, m.otpSvc,
		m.totpSvc, m.ephemeral, m.audit, m.clock, testAuthConfig())
}

// createValidUser creates a verified, active customer whose password is "password123"
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:            uuid.New(),
		Email:         "test@example.com",
		Phone:         "+919876543210",
		Name:          "Test User",
		PasswordHash:  "hashed_password123",
		Role:          domain.RoleCustomer,
		IsActive:      true,
		PhoneVerified: true,
		CreatedAt:     testNow.Add(-24 * time.Hour),
		UpdatedAt:     testNow.Add(-1 * time.Hour),
	}
}

// createValidSession creates a live session whose current refresh token is refresh
func createValidSession(t *testing.T, userID uuid.UUID, refresh string) *domain.Session {
	t.Helper()

	return &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: HashToken(refresh),
		CreatedAt: testNow.Add(-time.Hour),
		ExpiresAt: testNow.Add(7 * 24 * time.Hour),
	}
}

// createValidTokenClaims creates refresh token claims for the session
func createValidTokenClaims(t *testing.T, userID uuid.UUID, role string, sessionID uuid.UUID) *domain.TokenClaims {
	t.Helper()

	return &domain.TokenClaims{
		UserID:    userID,
		Role:      role,
		SessionID: sessionID,
		TokenType: "refresh",
		IssuedAt:  testNow.Unix(),
		ExpiresAt: testNow.Add(7 * 24 * time.Hour).Unix(),
	}
}

// stubUser makes the user repository serve a single user by email, id and phone
func stubUser(m *authMocks, user *domain.User) {
	m.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}
	m.userRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		if id == user.ID {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}
	m.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		if phone == user.Phone {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}
}

// stubLockout makes attempt counting and locking mutate user like the database would
func stubLockout(m *authMocks, user *domain.User) {
	m.userRepo.IncrementLoginAttemptsFunc = func(ctx context.Context, id uuid.UUID) (int, error) {
		user.LoginAttempts++
		return user.LoginAttempts, nil
	}
	m.userRepo.LockFunc = func(ctx context.Context, id uuid.UUID, until time.Time) error {
		user.LockedUntil = &until
		user.LoginAttempts = 0
		return nil
	}
	m.userRepo.RecordLoginFunc = func(ctx context.Context, id uuid.UUID, at time.Time) error {
		user.LastLoginAt = &at
		user.LockedUntil = nil
		user.LoginAttempts = 0
		return nil
	}
}

// memorySessions is a mutex-guarded session table with compare-and-swap rotation
type memorySessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
}

// useMemorySessions wires the session repository mock to an in-memory table
func useMemorySessions(m *authMocks) *memorySessions {
	store := &memorySessions{sessions: make(map[uuid.UUID]domain.Session)}
	m.sessionRepo.CreateFunc = func(ctx context.Context, s *domain.Session) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.sessions[s.ID] = *s
		return nil
	}
	m.sessionRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
		store.mu.Lock()
		defer store.mu.Unlock()
		s, ok := store.sessions[id]
		if !ok {
			return nil, domain.ErrSessionNotFound
		}
		return &s, nil
	}
	m.sessionRepo.RotateFunc = func(ctx context.Context, id uuid.UUID, oldHash, newHash string, usedAt time.Time) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		s, ok := store.sessions[id]
		if !ok || s.RevokedAt != nil || s.TokenHash != oldHash {
			return domain.ErrTokenReuse
		}
		s.TokenHash = newHash
		s.LastUsedAt = &usedAt
		store.sessions[id] = s
		return nil
	}
	m.sessionRepo.RevokeFunc = func(ctx context.Context, id uuid.UUID, at time.Time) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		if s, ok := store.sessions[id]; ok && s.RevokedAt == nil {
			s.RevokedAt = &at
			store.sessions[id] = s
		}
		return nil
	}
	return store
}

func (s *memorySessions) get(id uuid.UUID) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
