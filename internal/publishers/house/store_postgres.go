// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package house

import (
	"context"
	"fmt"
	"strings"

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

var houseColumns = strings.Join(schema.IdentityPublisherHouse.Columns(), ", ")

func scanHouse(row pgx.Row) (*House, error) {
	house := &House{}
	err := row.Scan(
		&house.ID,
		&house.Name,
		&house.Email,
		&house.PasswordHash,
		&house.LicenseImage,
		&house.LogoImage,
		&house.Address,
		&house.ContactInfo,
		&house.IsActive,
		&house.IsVerified,
		&house.CreatedAt,
		&house.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return house, nil
}

func conflictFor(err error) error {
	if strings.Contains(dberr.ConstraintName(err), schema.IdentityPublisherHouse.Email) {
		return apperr.Conflict("Email already registered").WithCause(err)
	}
	return apperr.Conflict("Publisher house name already exists").WithCause(err)
}

func (repository *PostgresRepository) findBy(context context.Context, column string, value any) (*House, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		houseColumns, schema.IdentityPublisherHouse.Table, column,
	)

	house, err := scanHouse(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, resourceHouse, "postgres_house_find_failed")
	}
	return house, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*House, error) {
	return repository.findBy(context, schema.IdentityPublisherHouse.ID, id)
}

// FindByEmail implements [Repository].
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*House, error) {
	return repository.findBy(context, schema.IdentityPublisherHouse.Email, email)
}

/*
Create inserts a new publisher house.

Parameters:
  - context: context.Context
  - house: *House (ID and timestamps are filled in)

Returns:
  - error: apperr.Conflict or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, house *House) error {
	table := schema.IdentityPublisherHouse
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		table.Table,
		table.Name, table.Email, table.Password, table.LicenseImage, table.LogoImage, table.IsActive,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		house.Name, house.Email, house.PasswordHash, house.LicenseImage, house.LogoImage, house.IsActive,
	).Scan(&house.ID, &house.CreatedAt, &house.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return conflictFor(err)
		}
		return fmt.Errorf("postgres_house_create_failed: %w", err)
	}
	return nil
}

// UpdateProfile implements [Repository].
func (repository *PostgresRepository) UpdateProfile(context context.Context, house *House) error {
	table := schema.IdentityPublisherHouse
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.Name, table.Address, table.ContactInfo, table.LogoImage, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		house.ID, house.Name, house.Address, house.ContactInfo, house.LogoImage,
	).Scan(&house.UpdatedAt)

	if err != nil && dberr.IsUniqueViolation(err) {
		return conflictFor(err)
	}
	return dberr.Wrap(err, resourceHouse, "postgres_house_update_failed")
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*House, int, error) {
	table := schema.IdentityPublisherHouse

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceHouse, "postgres_house_count_failed")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2`, houseColumns, table.Table, table.ID)
	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceHouse, "postgres_house_list_failed")
	}
	defer rows.Close()

	houses := make([]*House, 0, limit)
	for rows.Next() {
		house, err := scanHouse(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceHouse, "postgres_house_scan_failed")
		}
		houses = append(houses, house)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceHouse, "postgres_house_list_failed")
	}

	return houses, total, nil
}

/*
UpdateStatus applies the given flags with COALESCE so nil keeps the stored value.

Parameters:
  - context: context.Context
  - id: int64
  - status: Status

Returns:
  - *House: Updated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) UpdateStatus(context context.Context, id int64, status Status) (*House, error) {
	table := schema.IdentityPublisherHouse
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE($2, %s), %s = COALESCE($3, %s), %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.IsActive, table.IsActive, table.IsVerified, table.IsVerified, table.UpdatedAt,
		table.ID,
		houseColumns,
	)

	house, err := scanHouse(repository.pool.QueryRow(context, query, id, status.IsActive, status.IsVerified))
	if err != nil {
		return nil, dberr.Wrap(err, resourceHouse, "postgres_house_update_status_failed")
	}
	return house, nil
}
