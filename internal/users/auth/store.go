// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for reader-side accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or database failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByUsername returns the account with the given (normalized) username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or database failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a new account and fills in its ID and timestamps.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: CONFLICT on a duplicate username, phone or email
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateProfile persists the mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: NOT_FOUND or database failures
	*/
	UpdateProfile(context context.Context, user *User) error

	/*
		ChangeRole moves the account from one role to another, but only if it
		still holds the from role.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - from: sec.UserRole
		  - to: sec.UserRole

		Returns:
		  - bool: false if the account no longer held the from role
		  - error: Database failures
	*/
	ChangeRole(context context.Context, id int64, from, to sec.UserRole) (bool, error)

	/*
		SetActive switches an account on or off.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - active: bool

		Returns:
		  - error: NOT_FOUND or database failures
	*/
	SetActive(context context.Context, id int64, active bool) error

	/*
		MarkEmailVerified flags the account owning email as verified. An email
		owned by nobody is not an error.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Database failures
	*/
	MarkEmailVerified(context context.Context, email string) error
}

// # Collaborators

// BookCounter reports how many books a user has authored.
type BookCounter interface {
	CountAuthoredBooks(context context.Context, userID int64) (int, error)
}
