// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"fmt"
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Authorization Predicates
//
// Each predicate returns nil to allow and a FORBIDDEN error to deny. A nil
// principal or an empty role is always denied.

// RequireRole allows only principals whose role equals role.
func RequireRole(p *Principal, role string) error {
	return RequireAnyRole(p, role)
}

// RequireAnyRole allows principals whose role is in roles. An empty role set
// denies everyone.
func RequireAnyRole(p *Principal, roles ...string) error {
	if p == nil || p.Role == "" {
		return apperr.Forbidden("Insufficient permissions")
	}
	for _, role := range roles {
		if role != "" && p.Role == role {
			return nil
		}
	}
	return apperr.Forbidden(fmt.Sprintf("Requires role: %s", strings.Join(roles, ", ")))
}

// RequireKind allows only principals from the given credential store.
func RequireKind(p *Principal, kind sec.EntityType) error {
	if p == nil || p.Kind == "" || p.Kind != kind {
		return apperr.Forbidden(fmt.Sprintf("Requires %s account", kind))
	}
	return nil
}

// RequireSuperAdmin checks the stored super-admin flag. The role string is not
// consulted.
func RequireSuperAdmin(p *Principal) error {
	if p == nil || p.Kind != sec.EntityAdmin || !p.IsSuperAdmin {
		return apperr.Forbidden("Super admin access required")
	}
	return nil
}

// RequireCapability allows admins holding capability. Super admins hold all.
func RequireCapability(p *Principal, capability sec.Capability) error {
	if p == nil || p.Kind != sec.EntityAdmin {
		return apperr.Forbidden("Admin access required")
	}
	if p.IsSuperAdmin || p.Capabilities.Has(capability) {
		return nil
	}
	return apperr.Forbidden(fmt.Sprintf("Requires capability: %s", capability))
}

// RequireOwnerOrRole allows the resource owner, or any principal whose role is
// in roles.
func RequireOwnerOrRole(p *Principal, owner Owner, roles ...string) error {
	if p == nil {
		return apperr.Forbidden("Insufficient permissions")
	}
	if owner.Is(p) {
		return nil
	}
	if len(roles) > 0 && RequireAnyRole(p, roles...) == nil {
		return nil
	}
	return apperr.Forbidden("Not the owner of this resource")
}

// RequireNotSelf denies an operation whose target is the caller itself.
func RequireNotSelf(p *Principal, targetKind sec.EntityType, targetID int64) error {
	if p == nil {
		return apperr.Forbidden("Insufficient permissions")
	}
	if p.Kind == targetKind && p.ID == targetID {
		return apperr.Forbidden("Cannot perform this action on your own account")
	}
	return nil
}
