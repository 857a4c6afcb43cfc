// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"time"
)

// Repository defines the data access contract for administrators.
type Repository interface {

	/*
		FindByID returns the admin with the given ID.

		Returns:
		  - *Admin: Hydrated entity
		  - error: NOT_FOUND or database failures
	*/
	FindByID(context context.Context, id int64) (*Admin, error)

	/*
		FindByEmail returns the admin with the given (normalized) email.

		Returns:
		  - *Admin: Hydrated entity
		  - error: NOT_FOUND or database failures
	*/
	FindByEmail(context context.Context, email string) (*Admin, error)

	/*
		Create persists a new admin with its role and capability flags.

		Returns:
		  - error: CONFLICT on a duplicate username, email or phone
	*/
	Create(context context.Context, admin *Admin) error

	/*
		Update persists phone number, role and capability flags together.

		Returns:
		  - error: NOT_FOUND, CONFLICT or database failures
	*/
	Update(context context.Context, admin *Admin) error

	/*
		Delete removes the admin.

		Returns:
		  - error: NOT_FOUND or database failures
	*/
	Delete(context context.Context, id int64) error

	/*
		List returns one page of admins ordered by ID, and the total count.

		Returns:
		  - []*Admin: The page
		  - int: Total number of admins
		  - error: Database failures
	*/
	List(context context.Context, limit, offset int) ([]*Admin, int, error)

	/*
		TouchLastLogin records a successful login.

		Returns:
		  - error: Database failures
	*/
	TouchLastLogin(context context.Context, id int64, at time.Time) error
}
