// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements reader-side accounts: registration, login, profile and
the one-way role ladder reader -> writer -> publisher.

Architecture:

  - Service: Registration, login and profile use cases.
  - Transitions: Role promotions guarded by compare-and-set updates.
  - Repository: [UserRepository] over identity."user" in Postgres.

Publisher houses and admins live in their own packages and tables. A user is
never an admin.
*/
package auth

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Domain Entities

// User is a registered reader, writer or promoted publisher.
type User struct {
	ID           int64             `json:"id"`
	Username     string            `json:"username"`
	FullName     string            `json:"full_name"`
	PhoneNumber  string            `json:"phone_number"`
	Email        *string           `json:"email,omitempty"`
	PasswordHash string            `json:"-"`
	Role         sec.UserRole      `json:"role"`
	IsActive     bool              `json:"is_active"`
	IsVerified   bool              `json:"is_verified"`
	Bio          *string           `json:"bio,omitempty"`
	ProfileImage *string           `json:"profile_image,omitempty"`
	SocialLinks  map[string]string `json:"social_links"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
