// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin implements administrator accounts and admin management.

Enrollment is gated by a process-wide enrollment code. Capability flags are
always derived from the role with [sec.DeriveCapabilities], at creation and on
every role change, and are written in the same statement as the role.
*/
package admin

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// Admin is an administrator account.
type Admin struct {
	ID           int64         `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PhoneNumber  *string       `json:"phone_number,omitempty"`
	PasswordHash string        `json:"-"`
	Role         sec.AdminRole `json:"role"`
	IsActive     bool          `json:"is_active"`
	LastLoginAt  *time.Time    `json:"last_login,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	sec.Capabilities
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldAdminCode   = "admin_code"
)

const (
	// MinPasswordLength is the shortest password accepted at enrollment.
	MinPasswordLength = 8

	// TokenType is the "token_type" value of login responses.
	TokenType = "bearer"

	resourceAdmin = "Admin"
)
