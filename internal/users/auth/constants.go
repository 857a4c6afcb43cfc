// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Account Constraints

const (
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 8

	// MaxPasswordLength caps the hashing input.
	MaxPasswordLength = 128

	// PublisherBookThreshold is the number of authored books a writer needs
	// before promotion to publisher.
	PublisherBookThreshold = 3

	// TokenType is the "token_type" value of login responses.
	TokenType = "bearer"
)

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldFullName    = "full_name"
	FieldPhoneNumber = "phone_number"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldBio         = "bio"
	FieldSocialLinks = "social_links"
	FieldIsActive    = "is_active"
)
