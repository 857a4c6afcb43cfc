// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/inkwell/pkg/slice"

// # Entity Types

// EntityType names the credential store a principal lives in. It travels in
// the token as the "entity_type" claim and selects the lookup on the way back.
type EntityType string

const (
	EntityUser      EntityType = "user"
	EntityPublisher EntityType = "publisher"
	EntityAdmin     EntityType = "admin"
)

// Valid reports whether t is one of the three known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityUser, EntityPublisher, EntityAdmin:
		return true
	}
	return false
}

// # User Roles

// UserRole is the role of a reader-side account. It only ever moves forward:
// reader -> writer -> publisher.
type UserRole string

const (
	// Default role for registered accounts
	RoleReader UserRole = "reader"

	// Can author books
	RoleWriter UserRole = "writer"

	// Promoted writer with at least three authored books
	RolePublisher UserRole = "publisher"
)

// RolePublisherHouse is the fixed role carried by publisher house principals.
// It must never equal [RolePublisher]: role overrides granted to promoted
// users do not apply across credential stores.
const RolePublisherHouse = "publisher_house"

// Valid reports whether r is a known user role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleReader, RoleWriter, RolePublisher:
		return true
	}
	return false
}

// # Admin Roles

// AdminRole is the role of an administrator account.
type AdminRole string

const (
	AdminRoleSuper     AdminRole = "super_admin"
	AdminRoleContent   AdminRole = "content_admin"
	AdminRoleUser      AdminRole = "user_admin"
	AdminRolePublisher AdminRole = "publisher_admin"
)

// AdminRoles lists every admin role in privilege order.
var AdminRoles = []AdminRole{AdminRoleSuper, AdminRoleContent, AdminRoleUser, AdminRolePublisher}

// Valid reports whether r is a known admin role.
func (r AdminRole) Valid() bool {
	switch r {
	case AdminRoleSuper, AdminRoleContent, AdminRoleUser, AdminRolePublisher:
		return true
	}
	return false
}

// # Capabilities

// Capability names a single administrative permission.
type Capability string

const (
	CapManageUsers      Capability = "manage_users"
	CapManagePublishers Capability = "manage_publishers"
	CapManageContent    Capability = "manage_content"
	CapManageSystem     Capability = "manage_system"
)

var allCapabilities = []Capability{CapManageUsers, CapManagePublishers, CapManageContent, CapManageSystem}

// Capabilities is the flag set stored on an admin row.
type Capabilities struct {
	IsSuperAdmin     bool `json:"is_super_admin"`
	ManageUsers      bool `json:"can_manage_users"`
	ManagePublishers bool `json:"can_manage_publishers"`
	ManageContent    bool `json:"can_manage_content"`
	ManageSystem     bool `json:"can_manage_system"`
}

// DeriveCapabilities maps an admin role to its flag set. Flags are never
// chosen independently of the role; every create and role change goes
// through here.
func DeriveCapabilities(role AdminRole) Capabilities {
	switch role {
	case AdminRoleSuper:
		return Capabilities{
			IsSuperAdmin:     true,
			ManageUsers:      true,
			ManagePublishers: true,
			ManageContent:    true,
			ManageSystem:     true,
		}
	case AdminRoleUser:
		return Capabilities{ManageUsers: true}
	case AdminRolePublisher:
		return Capabilities{ManagePublishers: true}
	case AdminRoleContent:
		return Capabilities{ManageContent: true}
	default:
		return Capabilities{}
	}
}

// Has reports whether the flag set grants c.
func (c Capabilities) Has(capability Capability) bool {
	switch capability {
	case CapManageUsers:
		return c.ManageUsers
	case CapManagePublishers:
		return c.ManagePublishers
	case CapManageContent:
		return c.ManageContent
	case CapManageSystem:
		return c.ManageSystem
	}
	return false
}

// List returns the granted capabilities in a stable order, for token claims
// and API responses.
func (c Capabilities) List() []string {
	granted := slice.Filter(allCapabilities, c.Has)
	return slice.Map(granted, func(capability Capability) string { return string(capability) })
}
