package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
app:
  env: test
jwt:
  secret: ${AIRION_TEST_SECRET}
`

func TestParse_AppliesDefaults(t *testing.T) {
	t.Setenv("AIRION_TEST_SECRET", "s3cret")

	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, EnvTest, cfg.Env)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 6, cfg.OTP_Length)
	assert.Equal(t, 5, cfg.OTP_MaxAttempts)
	assert.Equal(t, 5, cfg.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LockoutDuration)
	assert.Equal(t, 10*time.Minute, cfg.OAuthStateTTL)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxImageBytes)
	assert.Equal(t, "inr", cfg.Payments.Currency)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.IsProduction())
}

func TestParse_ProductionDefaultsToJSONLogs(t *testing.T) {
	cfg, err := Parse([]byte("app:\n  env: production\njwt:\n  secret: x\n"))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing secret",
			yaml:    "app:\n  env: test\n",
			wantErr: "jwt.secret is required",
		},
		{
			name:    "bad duration",
			yaml:    "app:\n  env: test\njwt:\n  secret: x\n  access_ttl: soon\n",
			wantErr: "invalid JWT access TTL",
		},
		{
			name:    "refresh shorter than access",
			yaml:    "app:\n  env: test\njwt:\n  secret: x\n  access_ttl: 2h\n  refresh_ttl: 1h\n",
			wantErr: "jwt.refresh_ttl must not be shorter",
		},
		{
			name:    "unknown env",
			yaml:    "app:\n  env: staging\njwt:\n  secret: x\n",
			wantErr: `unknown app.env "staging"`,
		},
		{
			name:    "short otp",
			yaml:    "app:\n  env: test\njwt:\n  secret: x\notp:\n  length: 3\n",
			wantErr: "otp settings",
		},
		{
			name:    "malformed yaml",
			yaml:    "app: [",
			wantErr: "could not parse config yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ReadsOwnershipRules(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	rulesPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("app:\n  env: test\njwt:\n  secret: x\n"), 0o600))
	require.NoError(t, os.WriteFile(rulesPath, []byte(`ownershipRules:
  - method: GET
    path: /users/:id/bookings
    source: path
    paramName: id
`), 0o600))

	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("OWNERSHIP_RULES_PATH", rulesPath)
	chdirForTest(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.OwnershipRules, 1)
	assert.Equal(t, "/users/:id/bookings", cfg.OwnershipRules[0].Path)
	assert.Equal(t, "id", cfg.OwnershipRules[0].ParamName)
}

func TestLoad_MissingOwnershipRulesIsFine(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("app:\n  env: test\njwt:\n  secret: x\n"), 0o600))

	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("OWNERSHIP_RULES_PATH", filepath.Join(dir, "absent.yml"))
	chdirForTest(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.OwnershipRules)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
