// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

const resourceUser = "User"

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userSelect = fmt.Sprintf(`SELECT %s FROM %s`,
	strings.Join(schema.IdentityUser.Columns(), ", "),
	schema.IdentityUser.Table,
)

// scanUser hydrates a row selected with [userSelect].
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.PhoneNumber,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.IsVerified,
		&user.Bio,
		&user.ProfileImage,
		&user.SocialLinks,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByID retrieves a user by primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := userSelect + fmt.Sprintf(` WHERE %s = $1`, schema.IdentityUser.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "postgres_user_find_by_id_failed")
	}
	return user, nil
}

/*
FindByUsername retrieves a user by login key.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := userSelect + fmt.Sprintf(` WHERE %s = $1`, schema.IdentityUser.Username)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "postgres_user_find_by_username_failed")
	}
	return user, nil
}

/*
Create inserts a new account.

Description: Unique violations on username, phone number or email come back
as CONFLICT naming the offending field.

Parameters:
  - context: context.Context
  - user: *User (ID and timestamps are filled in)

Returns:
  - error: apperr.Conflict or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	table := schema.IdentityUser
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s, %s`,
		table.Table,
		table.Username, table.FullName, table.PhoneNumber, table.Email,
		table.Password, table.Role, table.IsActive, table.SocialLinks,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	if user.SocialLinks == nil {
		user.SocialLinks = map[string]string{}
	}

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.FullName,
		user.PhoneNumber,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.SocialLinks,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return conflictFor(dberr.ConstraintName(err)).WithCause(err)
		}
		return fmt.Errorf("postgres_user_create_failed: %w", err)
	}
	return nil
}

// conflictFor turns a unique constraint name into a client message.
func conflictFor(constraint string) *apperr.AppError {
	switch {
	case strings.Contains(constraint, schema.IdentityUser.Username):
		return apperr.Conflict("Username already registered")
	case strings.Contains(constraint, schema.IdentityUser.PhoneNumber):
		return apperr.Conflict("Phone number already registered")
	case strings.Contains(constraint, schema.IdentityUser.Email):
		return apperr.Conflict("Email already registered")
	}
	return apperr.Conflict("User already exists")
}

/*
UpdateProfile persists full name, bio and social links.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) UpdateProfile(context context.Context, user *User) error {
	table := schema.IdentityUser
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.FullName, table.Bio, table.SocialLinks, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, user.ID, user.FullName, user.Bio, user.SocialLinks).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, resourceUser, "postgres_user_update_profile_failed")
}

/*
ChangeRole performs a compare-and-set on the role column.

Description: The WHERE clause carries the expected current role, so of two
concurrent promotions at most one matches a row.

Parameters:
  - context: context.Context
  - id: int64
  - from: sec.UserRole
  - to: sec.UserRole

Returns:
  - bool: Whether a row was updated
  - error: Database errors
*/
func (repository *PostgresUserRepository) ChangeRole(context context.Context, id int64, from, to sec.UserRole) (bool, error) {
	table := schema.IdentityUser
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = NOW() WHERE %s = $1 AND %s = $2`,
		table.Table, table.Role, table.UpdatedAt, table.ID, table.Role,
	)

	tag, err := repository.pool.Exec(context, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("postgres_user_change_role_failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

/*
SetActive switches the account on or off.

Parameters:
  - context: context.Context
  - id: int64
  - active: bool

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) SetActive(context context.Context, id int64, active bool) error {
	table := schema.IdentityUser
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		table.Table, table.IsActive, table.UpdatedAt, table.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, active)
	if err != nil {
		return fmt.Errorf("postgres_user_set_active_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

/*
MarkEmailVerified flags the owner of email as verified.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - error: Database errors
*/
func (repository *PostgresUserRepository) MarkEmailVerified(context context.Context, email string) error {
	table := schema.IdentityUser
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND NOT %s`,
		table.Table, table.IsVerified, table.UpdatedAt, table.Email, table.IsVerified,
	)

	if _, err := repository.pool.Exec(context, query, email); err != nil {
		return fmt.Errorf("postgres_user_mark_verified_failed: %w", err)
	}
	return nil
}
