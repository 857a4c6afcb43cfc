// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package house implements publisher house accounts.

A publisher house is an organisation, not a promoted user. It has its own
credential table, logs in by email and always carries the fixed role
"publisher_house", so user-side role checks never match it.

Admins holding manage_publishers can list houses and flip their active and
verified flags.
*/
package house

import "time"

// # Domain Entities

// House is a registered publisher house.
type House struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	LicenseImage *string   `json:"license_image,omitempty"`
	LogoImage    *string   `json:"logo_image,omitempty"`
	Address      *string   `json:"address,omitempty"`
	ContactInfo  *string   `json:"contact_info,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Status is a partial change of the administrative flags. Nil leaves a flag
// as it is.
type Status struct {
	IsActive   *bool `json:"is_active"`
	IsVerified *bool `json:"is_verified"`
}

// # Field Identifiers

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldAddress         = "address"
	FieldContactInfo     = "contact_info"
	FieldStatus          = "status"
)

const (
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 8

	// TokenType is the "token_type" value of login responses.
	TokenType = "bearer"

	resourceHouse = "Publisher house"
)
