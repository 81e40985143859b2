package auth

import (
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// rbacModel grants a subject a method regex on a keyMatch2 path pattern.
// Roles inherit role_user through g.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// CasbinService owns the enforcer backing route authorization
type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer persisting policies through the GORM adapter
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to init casbin adapter: %w", err)
	}
	return newCasbinService(adp)
}

func newCasbinService(adp persist.Adapter) (*CasbinService, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load casbin policies: %w", err)
	}
	return &CasbinService{E: e}, nil
}

// DefaultPolicies are seeded when the policy table is empty
var DefaultPolicies = [][]string{
	{"role_admin", "/*", "(GET|POST|PUT|PATCH|DELETE)"},

	{"role_user", "/auth/me", "GET"},
	{"role_user", "/auth/logout", "POST"},
	{"role_user", "/auth/logout-all", "POST"},
	{"role_user", "/auth/sessions", "GET"},
	{"role_user", "/auth/sessions/:id", "DELETE"},
	{"role_user", "/auth/password", "POST"},
	{"role_user", "/auth/mfa/:action", "POST"},
	{"role_user", "/bookings", "GET"},
	{"role_user", "/bookings/:id", "GET"},
	{"role_user", "/bookings/:id/status", "PATCH"},

	{"role_customer", "/bookings", "POST"},

	{"role_vendor", "/vendors", "POST"},
	{"role_vendor", "/vendors/:id", "PATCH"},
	{"role_vendor", "/vendors/:id/logo", "POST"},
	{"role_vendor", "/services", "POST"},
	{"role_vendor", "/services/:id", "(PATCH|DELETE)"},
	{"role_vendor", "/services/:id/packages", "POST"},

	{"role_owner", "/users/:id/bookings", "GET"},
}

// DefaultGroupings make every account role inherit role_user
var DefaultGroupings = [][]string{
	{"role_admin", "role_user"},
	{"role_vendor", "role_user"},
	{"role_customer", "role_user"},
}

// SeedDefaults installs the default policies when none exist yet.
func (s *CasbinService) SeedDefaults() error {
	policies, err := s.E.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read casbin policies: %w", err)
	}
	if len(policies) > 0 {
		return nil
	}
	if _, err := s.E.AddPolicies(DefaultPolicies); err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}
	if _, err := s.E.AddGroupingPolicies(DefaultGroupings); err != nil {
		return fmt.Errorf("failed to seed role groupings: %w", err)
	}
	slog.Info("casbin: seeded default policies", "count", len(DefaultPolicies))
	return nil
}
