package config

import (
	"testing"

	"github.com/vinay2003/Airion-backend-sub001/internal/config"
)

// testYAML mirrors config/config.yml with local-only values. Rate limits
// are high so suites can hammer /auth without tripping 429s.
const testYAML = `
app:
  env: test
  gin_mode: test
  log_level: warn
jwt:
  secret: test-jwt-secret-for-e2e
  access_ttl: 15m
  refresh_ttl: 24h
otp:
  ttl: 5m
  length: 6
  max_attempts: 3
  resend_window: 60s
security:
  max_login_attempts: 3
  lockout_duration: 15m
  rate_limit_rps: 1000
  rate_limit_burst: 1000
payments:
  currency: inr
`

// LoadTestConfig builds the configuration used by in-process E2E suites.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(testYAML))
	if err != nil {
		t.Fatalf("failed to parse test configuration: %v", err)
	}
	cfg.OwnershipRules = []config.OwnershipRule{
		{Method: "GET", Path: "/users/:id/bookings", Source: "path", ParamName: "id"},
	}
	return cfg
}
