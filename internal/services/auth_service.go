package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

const (
	mfaChallengePrefix = "mfa:challenge:"
	mfaSetupPrefix     = "mfa:setup:"
	mfaSetupTTL        = 10 * time.Minute
)

// AuthConfig holds the lockout and MFA knobs of the auth service
type AuthConfig struct {
	MaxLoginAttempts int
	LockoutDuration  time.Duration
	MFAChallengeTTL  time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	totpSvc     domain.TOTPService
	ephemeral   domain.EphemeralStore
	audit       domain.AuditLogger
	clock       clockwork.Clock
	config      AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	totpSvc domain.TOTPService,
	ephemeral domain.EphemeralStore,
	audit domain.AuditLogger,
	clock clockwork.Clock,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		totpSvc:     totpSvc,
		ephemeral:   ephemeral,
		audit:       audit,
		clock:       clock,
		config:      config,
	}
}

// HashToken returns the hex SHA-256 of a refresh token as stored in sessions.token_hash.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, email, phone, password, name, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleCustomer
	}
	if role != domain.RoleCustomer && role != domain.RoleVendor {
		return nil, domain.ErrRoleNotAllowed
	}
	email = normalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if _, err := s.userRepo.FindByPhone(ctx, phone); err == nil {
		return nil, fmt.Errorf("phone already registered: %w", domain.ErrUserAlreadyExists)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	user := &domain.User{
		Email:        email,
		Phone:        phone,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.otpSvc.Generate(ctx, phone); err != nil {
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(user.Email).WithPhone(user.Phone).WithMetadata("role", role))
	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, client domain.ClientInfo) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, uuid.Nil).
				WithEmail(email).WithClient(client).WithError(domain.ErrInvalidCredentials))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	now := s.clock.Now()
	if user.IsLocked(now) {
		return nil, &domain.LockoutError{RetryAfter: user.LockedUntil.Sub(now)}
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, s.recordFailedLogin(ctx, user, client, now)
	}

	if !user.PhoneVerified {
		return nil, domain.ErrPhoneNotVerified
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now

	if user.MFAEnabled {
		return s.startMFAChallenge(ctx, user)
	}
	return s.issueSession(ctx, user, client)
}

func (s *AuthServiceImpl) recordFailedLogin(ctx context.Context, user *domain.User, client domain.ClientInfo, now time.Time) error {
	attempts, err := s.userRepo.IncrementLoginAttempts(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}

	if attempts >= s.config.MaxLoginAttempts {
		if err := s.userRepo.Lock(ctx, user.ID, now.Add(s.config.LockoutDuration)); err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLockedEvent, user.ID).
			WithEmail(user.Email).WithClient(client).WithMetadata("attempts", attempts).
			WithError(domain.ErrAccountLocked))
		return &domain.LockoutError{RetryAfter: s.config.LockoutDuration}
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
		WithEmail(user.Email).WithClient(client).WithMetadata("attempts", attempts).
		WithError(domain.ErrInvalidCredentials))
	return domain.ErrInvalidCredentials
}

func (s *AuthServiceImpl) startMFAChallenge(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	challenge := uuid.NewString()
	if err := s.ephemeral.Put(ctx, mfaChallengePrefix+challenge, user.ID.String(), s.config.MFAChallengeTTL); err != nil {
		return nil, fmt.Errorf("failed to store mfa challenge: %w", err)
	}
	return &domain.AuthResult{User: user, MFAChallenge: challenge}, nil
}

// issueSession opens a session row and mints the token pair bound to it
func (s *AuthServiceImpl) issueSession(ctx context.Context, user *domain.User, client domain.ClientInfo) (*domain.AuthResult, error) {
	now := s.clock.Now()
	session := &domain.Session{
		ID:         uuid.New(),
		UserID:     user.ID,
		IPAddress:  client.IPAddress,
		UserAgent:  client.UserAgent,
		DeviceName: client.DeviceName,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.tokenSvc.RefreshTTL()),
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	session.TokenHash = HashToken(refreshToken)

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).
		WithEmail(user.Email).WithClient(client).WithSession(session.ID))

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// CompleteMFALogin implements domain.AuthService
func (s *AuthServiceImpl) CompleteMFALogin(ctx context.Context, challenge, code string, client domain.ClientInfo) (*domain.AuthResult, error) {
	raw, err := s.ephemeral.Take(ctx, mfaChallengePrefix+challenge)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, domain.ErrMFAChallengeInvalid
		}
		return nil, fmt.Errorf("failed to load mfa challenge: %w", err)
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.ErrMFAChallengeInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	if !user.MFAEnabled || !s.totpSvc.Validate(user.MFASecret, code) {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithClient(client).WithMetadata("stage", "mfa").WithError(domain.ErrMFAInvalidCode))
		return nil, domain.ErrMFAInvalidCode
	}

	return s.issueSession(ctx, user, client)
}

// SocialLogin implements domain.AuthService. The account is found by
// provider identity, then linked by email, else created as a customer.
func (s *AuthServiceImpl) SocialLogin(ctx context.Context, profile domain.SocialProfile, client domain.ClientInfo) (*domain.AuthResult, error) {
	user, err := s.findOrCreateSocialUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	now := s.clock.Now()
	if user.IsLocked(now) {
		return nil, &domain.LockoutError{RetryAfter: user.LockedUntil.Sub(now)}
	}
	if err := s.userRepo.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &now

	if user.MFAEnabled {
		return s.startMFAChallenge(ctx, user)
	}
	return s.issueSession(ctx, user, client)
}

func (s *AuthServiceImpl) findOrCreateSocialUser(ctx context.Context, profile domain.SocialProfile) (*domain.User, error) {
	user, err := s.userRepo.FindBySocial(ctx, profile.Provider, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up social user: %w", err)
	}

	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, domain.BadRequest("oauth provider did not return a verified email")
	}

	user, err = s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user.SocialProvider = profile.Provider
		user.SocialID = profile.ID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to link social account: %w", err)
		}
		return user, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	now := s.clock.Now()
	user = &domain.User{
		Email:          email,
		Name:           profile.Name,
		Role:           domain.RoleCustomer,
		IsActive:       true,
		PhoneVerified:  true,
		SocialProvider: profile.Provider,
		SocialID:       profile.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(email).WithMetadata("provider", profile.Provider))
	return user, nil
}

// RefreshToken implements domain.AuthService. Each refresh rotates the
// token; presenting a superseded token revokes the whole session.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string, client domain.ClientInfo) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}

	now := s.clock.Now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if !session.ExpiresAt.After(now) {
		return nil, domain.ErrSessionExpired
	}

	if subtle.ConstantTimeCompare([]byte(session.TokenHash), []byte(HashToken(refreshToken))) != 1 {
		return nil, s.revokeReusedSession(ctx, session, client, now)
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefresh, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.sessionRepo.Rotate(ctx, session.ID, session.TokenHash, HashToken(newRefresh), now); err != nil {
		if errors.Is(err, domain.ErrTokenReuse) {
			// Lost a race with a concurrent refresh of the same token
			return nil, s.revokeReusedSession(ctx, session, client, now)
		}
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

func (s *AuthServiceImpl) revokeReusedSession(ctx context.Context, session *domain.Session, client domain.ClientInfo, now time.Time) error {
	if err := s.sessionRepo.Revoke(ctx, session.ID, now); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenReuseEvent, session.UserID).
		WithClient(client).WithSession(session.ID).WithError(domain.ErrTokenReuse))
	return domain.ErrTokenReuse
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessionRepo.Revoke(ctx, sessionID, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, uuid.Nil).WithSession(sessionID))
	return nil
}

// LogoutAll implements domain.AuthService
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	n, err := s.sessionRepo.RevokeAll(ctx, userID, uuid.Nil, s.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, userID).WithMetadata("revoked", n))
	return nil
}

// ListSessions implements domain.AuthService
func (s *AuthServiceImpl) ListSessions(ctx context.Context, userID uuid.UUID) ([]domain.Session, error) {
	sessions, err := s.sessionRepo.ListActive(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// RevokeSession implements domain.AuthService. Sessions of other users
// are reported as missing.
func (s *AuthServiceImpl) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("session %s: %w", sessionID, domain.ErrResourceNotFound)
		}
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrResourceNotFound)
	}
	return s.Logout(ctx, sessionID)
}

// VerifyPhone implements domain.AuthService
func (s *AuthServiceImpl) VerifyPhone(ctx context.Context, phone, code string) (*domain.User, error) {
	ok, err := s.otpSvc.Verify(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrOTPInvalid
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.ActivatePhone(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to activate phone: %w", err)
	}
	user.PhoneVerified = true

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PhoneVerifiedEvent, user.ID).WithPhone(phone))
	return user, nil
}

// ChangePassword implements domain.AuthService. Every other session of
// the user is revoked.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID, sessionID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.passwordSvc.Verify(user.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashed
	user.UpdatedAt = s.clock.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if _, err := s.sessionRepo.RevokeAll(ctx, userID, sessionID, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordChangedEvent, userID).WithSession(sessionID))
	return nil
}

// SetupMFA implements domain.AuthService. The secret stays pending until
// EnableMFA confirms a code generated from it.
func (s *AuthServiceImpl) SetupMFA(ctx context.Context, userID uuid.UUID) (*domain.MFASetup, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.MFAEnabled {
		return nil, domain.ErrMFAAlreadyEnabled
	}

	setup, err := s.totpSvc.Generate(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mfa secret: %w", err)
	}
	if err := s.ephemeral.Put(ctx, mfaSetupPrefix+userID.String(), setup.Secret, mfaSetupTTL); err != nil {
		return nil, fmt.Errorf("failed to store mfa secret: %w", err)
	}
	return setup, nil
}

// EnableMFA implements domain.AuthService
func (s *AuthServiceImpl) EnableMFA(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFAEnabled {
		return domain.ErrMFAAlreadyEnabled
	}

	key := mfaSetupPrefix + userID.String()
	secret, err := s.ephemeral.Take(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return domain.ErrMFASetupNotFound
		}
		return fmt.Errorf("failed to load mfa secret: %w", err)
	}
	if !s.totpSvc.Validate(secret, code) {
		// Keep the pending secret so the user can retry with the next code
		_ = s.ephemeral.Put(ctx, key, secret, mfaSetupTTL)
		return domain.ErrMFAInvalidCode
	}

	user.MFAEnabled = true
	user.MFASecret = secret
	user.UpdatedAt = s.clock.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to enable mfa: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.MFAEnabledEvent, userID))
	return nil
}

// DisableMFA implements domain.AuthService
func (s *AuthServiceImpl) DisableMFA(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.MFAEnabled {
		return domain.ErrMFANotEnabled
	}
	if !s.totpSvc.Validate(user.MFASecret, code) {
		return domain.ErrMFAInvalidCode
	}

	user.MFAEnabled = false
	user.MFASecret = ""
	user.UpdatedAt = s.clock.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to disable mfa: %w", err)
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.MFADisabledEvent, userID))
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
