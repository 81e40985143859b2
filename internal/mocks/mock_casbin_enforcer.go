package mocks

import (
	"slices"
	"strings"

	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing.
// Without overrides it keeps policies in memory and matches them exactly.
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
	SaveCalls        int
	policies         [][]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with default behaviors
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{
		policies: [][]string{
			{"role_admin", "/*", "GET|POST|PUT|PATCH|DELETE"},
			{"role_user", "/auth/me", "GET"},
		},
	}
}

func toRule(params []interface{}) []string {
	rule := make([]string, 0, len(params))
	for _, p := range params {
		if s, ok := p.(string); ok {
			rule = append(rule, s)
		}
	}
	return rule
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toRule(params)
	for _, p := range m.policies {
		if slices.Equal(p, rule) {
			return false, nil
		}
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy removes a policy rule
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	rule := toRule(params)
	for i, p := range m.policies {
		if slices.Equal(p, rule) {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Enforce checks if a request should be allowed
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	req := toRule(rvals)
	if len(req) < 3 {
		return false, nil
	}
	for _, p := range m.policies {
		if p[0] == req[0] && (p[1] == req[1] || p[1] == "/*") && (p[2] == req[2] || slices.Contains(strings.Split(p[2], "|"), req[2])) {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = slices.Clone(policy)
	}
	return result, nil
}

// SavePolicy saves all policies
func (m *MockCasbinEnforcer) SavePolicy() error {
	m.SaveCalls++
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = slices.Clone(policy)
	}
}
