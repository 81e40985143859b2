package auth

import (
	"testing"
	"time"

	"github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

func TestJWTService_RoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Now())
	svc := NewJWTService("secret", "airion", 15*time.Minute, time.Hour, clock)
	userID, sessionID := uuid.New(), uuid.New()

	access, err := svc.GenerateAccessToken(userID, domain.RoleVendor, sessionID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID, domain.RoleVendor, sessionID)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, domain.RoleVendor, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestJWTService_Rejections(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Now())
	svc := NewJWTService("secret", "airion", 15*time.Minute, time.Hour, clock)
	other := NewJWTService("other-secret", "airion", 15*time.Minute, time.Hour, clock)
	foreignIssuer := NewJWTService("secret", "someone-else", 15*time.Minute, time.Hour, clock)

	access, _ := svc.GenerateAccessToken(uuid.New(), domain.RoleCustomer, uuid.New())
	refresh, _ := svc.GenerateRefreshToken(uuid.New(), domain.RoleCustomer, uuid.New())
	forged, _ := other.GenerateAccessToken(uuid.New(), domain.RoleAdmin, uuid.New())
	foreign, _ := foreignIssuer.GenerateAccessToken(uuid.New(), domain.RoleAdmin, uuid.New())

	tests := []struct {
		name     string
		validate func() error
		want     error
	}{
		{
			name:     "refresh token used as access token",
			validate: func() error { _, err := svc.ValidateAccessToken(refresh); return err },
			want:     domain.ErrTokenInvalid,
		},
		{
			name:     "access token used as refresh token",
			validate: func() error { _, err := svc.ValidateRefreshToken(access); return err },
			want:     domain.ErrTokenInvalid,
		},
		{
			name:     "wrong signing key",
			validate: func() error { _, err := svc.ValidateAccessToken(forged); return err },
			want:     domain.ErrTokenInvalid,
		},
		{
			name:     "wrong issuer",
			validate: func() error { _, err := svc.ValidateAccessToken(foreign); return err },
			want:     domain.ErrTokenInvalid,
		},
		{
			name:     "garbage",
			validate: func() error { _, err := svc.ValidateAccessToken("not-a-jwt"); return err },
			want:     domain.ErrTokenMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), tt.want)
		})
	}
}

func TestJWTService_Expiry(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Now())
	svc := NewJWTService("secret", "airion", 15*time.Minute, time.Hour, clock)

	access, err := svc.GenerateAccessToken(uuid.New(), domain.RoleCustomer, uuid.New())
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	_, err = svc.ValidateAccessToken(access)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(4)

	hash, err := svc.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, svc.Verify(hash, "correct horse"))
	assert.False(t, svc.Verify(hash, "wrong"))
	assert.False(t, svc.Verify("", "correct horse"))
}

func TestTOTPService(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	svc := NewTOTPService("Airion", clock)

	setup, err := svc.Generate("user@example.com")
	require.NoError(t, err)
	assert.Contains(t, setup.URL, "otpauth://totp/")
	assert.Contains(t, setup.URL, "Airion")

	code, err := totp.GenerateCode(setup.Secret, clock.Now())
	require.NoError(t, err)
	assert.True(t, svc.Validate(setup.Secret, code))

	clock.Advance(5 * time.Minute)
	assert.False(t, svc.Validate(setup.Secret, code))
	assert.False(t, svc.Validate("", code))
}

func TestCasbinService_DefaultPolicies(t *testing.T) {
	svc, err := newCasbinService(fileadapter.NewAdapter("testdata/empty_policy.csv"))
	require.NoError(t, err)
	svc.E.EnableAutoSave(false)
	require.NoError(t, svc.SeedDefaults())

	tests := []struct {
		sub, obj, act string
		want          bool
	}{
		{"role_admin", "/vendors/123/approve", "PATCH", true},
		{"role_admin", "/admin/policies", "DELETE", true},
		{"role_customer", "/auth/me", "GET", true},
		{"role_customer", "/bookings", "POST", true},
		{"role_customer", "/bookings/abc/status", "PATCH", true},
		{"role_customer", "/vendors", "POST", false},
		{"role_customer", "/admin/policies", "GET", false},
		{"role_vendor", "/bookings", "POST", false},
		{"role_vendor", "/services/abc", "DELETE", true},
		{"role_vendor", "/vendors/abc/approve", "PATCH", false},
		{"role_vendor", "/vendors/stats", "GET", false},
		{"role_vendor", "/auth/mfa/setup", "POST", true},
		{"role_owner", "/users/abc/bookings", "GET", true},
		{"role_customer", "/users/abc/bookings", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.sub+" "+tt.act+" "+tt.obj, func(t *testing.T) {
			got, err := svc.E.Enforce(tt.sub, tt.obj, tt.act)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCasbinService_SeedIsIdempotent(t *testing.T) {
	svc, err := newCasbinService(fileadapter.NewAdapter("testdata/empty_policy.csv"))
	require.NoError(t, err)
	svc.E.EnableAutoSave(false)

	require.NoError(t, svc.SeedDefaults())
	require.NoError(t, svc.SeedDefaults())

	policies, err := svc.E.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, policies, len(DefaultPolicies))
}
