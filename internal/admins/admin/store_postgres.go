// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var adminColumns = strings.Join(schema.IdentityAdmin.Columns(), ", ")

func scanAdmin(row pgx.Row) (*Admin, error) {
	admin := &Admin{}
	err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.Email,
		&admin.PhoneNumber,
		&admin.PasswordHash,
		&admin.Role,
		&admin.IsSuperAdmin,
		&admin.ManageUsers,
		&admin.ManagePublishers,
		&admin.ManageContent,
		&admin.ManageSystem,
		&admin.IsActive,
		&admin.LastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func conflictFor(err error) error {
	constraint := dberr.ConstraintName(err)
	switch {
	case strings.Contains(constraint, schema.IdentityAdmin.Username):
		return apperr.Conflict("Username already registered").WithCause(err)
	case strings.Contains(constraint, schema.IdentityAdmin.Email):
		return apperr.Conflict("Email already registered").WithCause(err)
	case strings.Contains(constraint, schema.IdentityAdmin.PhoneNumber):
		return apperr.Conflict("Phone number already registered").WithCause(err)
	}
	return apperr.Conflict("Admin already exists").WithCause(err)
}

func (repository *PostgresRepository) findBy(context context.Context, column string, value any) (*Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, adminColumns, schema.IdentityAdmin.Table, column)

	admin, err := scanAdmin(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, resourceAdmin, "postgres_admin_find_failed")
	}
	return admin, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Admin, error) {
	return repository.findBy(context, schema.IdentityAdmin.ID, id)
}

// FindByEmail implements [Repository].
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Admin, error) {
	return repository.findBy(context, schema.IdentityAdmin.Email, email)
}

/*
Create inserts a new admin together with its derived flags.

Parameters:
  - context: context.Context
  - admin: *Admin (ID and timestamps are filled in)

Returns:
  - error: apperr.Conflict or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, admin *Admin) error {
	table := schema.IdentityAdmin
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s, %s, %s`,
		table.Table,
		table.Username, table.Email, table.PhoneNumber, table.Password, table.Role,
		table.IsSuperAdmin, table.CanManageUsers, table.CanManagePublishers, table.CanManageContent, table.CanManageSystem,
		table.IsActive,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		admin.Username, admin.Email, admin.PhoneNumber, admin.PasswordHash, admin.Role,
		admin.IsSuperAdmin, admin.ManageUsers, admin.ManagePublishers, admin.ManageContent, admin.ManageSystem,
		admin.IsActive,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return conflictFor(err)
		}
		return fmt.Errorf("postgres_admin_create_failed: %w", err)
	}
	return nil
}

/*
Update writes phone number, role and every capability flag in one statement,
so the flags can never lag behind the role.

Parameters:
  - context: context.Context
  - admin: *Admin

Returns:
  - error: apperr.NotFound, apperr.Conflict or database errors
*/
func (repository *PostgresRepository) Update(context context.Context, admin *Admin) error {
	table := schema.IdentityAdmin
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.PhoneNumber, table.Role,
		table.IsSuperAdmin, table.CanManageUsers, table.CanManagePublishers, table.CanManageContent, table.CanManageSystem,
		table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		admin.ID, admin.PhoneNumber, admin.Role,
		admin.IsSuperAdmin, admin.ManageUsers, admin.ManagePublishers, admin.ManageContent, admin.ManageSystem,
	).Scan(&admin.UpdatedAt)

	if err != nil && dberr.IsUniqueViolation(err) {
		return conflictFor(err)
	}
	return dberr.Wrap(err, resourceAdmin, "postgres_admin_update_failed")
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.IdentityAdmin.Table, schema.IdentityAdmin.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_admin_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceAdmin)
	}
	return nil
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Admin, int, error) {
	table := schema.IdentityAdmin

	var total int
	if err := repository.pool.QueryRow(context, fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceAdmin, "postgres_admin_count_failed")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2`, adminColumns, table.Table, table.ID)
	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceAdmin, "postgres_admin_list_failed")
	}
	defer rows.Close()

	admins := make([]*Admin, 0, limit)
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceAdmin, "postgres_admin_scan_failed")
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceAdmin, "postgres_admin_list_failed")
	}

	return admins, total, nil
}

// TouchLastLogin implements [Repository].
func (repository *PostgresRepository) TouchLastLogin(context context.Context, id int64, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.IdentityAdmin.Table, schema.IdentityAdmin.LastLoginAt, schema.IdentityAdmin.ID,
	)

	if _, err := repository.pool.Exec(context, query, id, at); err != nil {
		return fmt.Errorf("postgres_admin_touch_last_login_failed: %w", err)
	}
	return nil
}
