// Package authz decides whether a role satisfies a route's required role.
// ADMIN inherits everything STAFF may do.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj
`

type Enforcer struct {
	e *casbin.Enforcer
}

// NewEnforcer builds the role hierarchy: each role may access routes that
// require itself, and ADMIN additionally inherits STAFF.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	policies := [][]string{
		{"STAFF", "STAFF"},
		{"ADMIN", "ADMIN"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicy("ADMIN", "STAFF"); err != nil {
		return nil, err
	}

	return &Enforcer{e: e}, nil
}

// Allows reports whether a user holding role may access a route that
// requires requiredRole.
func (a *Enforcer) Allows(role, requiredRole string) bool {
	if requiredRole == "" {
		return true
	}
	ok, err := a.e.Enforce(role, requiredRole)
	return err == nil && ok
}
