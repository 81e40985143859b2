package services

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// RolePrefix marks casbin subjects that name a role rather than a user
const RolePrefix = "role_"

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service over the shared enforcer
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return NewPolicyServiceWithEnforcer(enforcer)
}

// NewPolicyServiceWithEnforcer accepts any domain.CasbinEnforcer
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// Subject maps a role name to its casbin subject ("vendor" -> "role_vendor").
func Subject(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if strings.HasPrefix(role, RolePrefix) {
		return role
	}
	return RolePrefix + role
}

func normalizeRule(role, resource, action string) (string, string, string, error) {
	role, resource, action = strings.TrimSpace(role), strings.TrimSpace(resource), strings.TrimSpace(action)
	if role == "" || resource == "" || action == "" {
		return "", "", "", domain.BadRequest("role, resource and action are required")
	}
	if !strings.HasPrefix(resource, "/") {
		return "", "", "", domain.BadRequest("resource must be an absolute path")
	}
	return Subject(role), resource, strings.ToUpper(action), nil
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	sub, obj, act, err := normalizeRule(role, resource, action)
	if err != nil {
		return err
	}
	if _, err := p.enforcer.AddPolicy(sub, obj, act); err != nil {
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	sub, obj, act, err := normalizeRule(role, resource, action)
	if err != nil {
		return err
	}
	removed, err := p.enforcer.RemovePolicy(sub, obj, act)
	if err != nil {
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	if !removed {
		return fmt.Errorf("policy %s %s %s: %w", sub, obj, act, domain.ErrResourceNotFound)
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(Subject(role), resource, strings.ToUpper(action))
}

// GetPolicies implements domain.PolicyService. A failed read yields no rules.
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		return nil
	}
	return policies
}
