// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package house

import "context"

// Repository defines the data access contract for publisher houses.
type Repository interface {

	/*
		FindByID returns the house with the given ID.

		Returns:
		  - *House: Hydrated entity
		  - error: NOT_FOUND or database failures
	*/
	FindByID(context context.Context, id int64) (*House, error)

	/*
		FindByEmail returns the house with the given (normalized) email.

		Returns:
		  - *House: Hydrated entity
		  - error: NOT_FOUND or database failures
	*/
	FindByEmail(context context.Context, email string) (*House, error)

	/*
		Create persists a new house and fills in its ID and timestamps.

		Returns:
		  - error: CONFLICT on a duplicate name or email
	*/
	Create(context context.Context, house *House) error

	/*
		UpdateProfile persists name, address, contact info and logo.

		Returns:
		  - error: NOT_FOUND, CONFLICT on a duplicate name, or database failures
	*/
	UpdateProfile(context context.Context, house *House) error

	/*
		List returns one page of houses ordered by ID, and the total count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*House: The page
		  - int: Total number of houses
		  - error: Database failures
	*/
	List(context context.Context, limit, offset int) ([]*House, int, error)

	/*
		UpdateStatus applies a partial flag change and returns the new row.

		Returns:
		  - *House: Updated entity
		  - error: NOT_FOUND or database failures
	*/
	UpdateStatus(context context.Context, id int64, status Status) (*House, error)
}
