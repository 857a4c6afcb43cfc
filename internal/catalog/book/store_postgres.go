// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

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

var bookColumns = strings.Join(schema.CatalogBook.Columns(), ", ")

func scanBook(row pgx.Row) (*Book, error) {
	book := &Book{}
	err := row.Scan(
		&book.ID, &book.Title, &book.Description, &book.IsFree, &book.Price, &book.CoverURL,
		&book.AuthorID, &book.PublisherHouseID, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, bookColumns, schema.CatalogBook.Table, schema.CatalogBook.ID)

	book, err := scanBook(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "get_book")
	}
	return book, nil
}

func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	table := schema.CatalogBook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s`,
		table.Table,
		table.Title, table.Description, table.IsFree, table.Price, table.CoverURL, table.AuthorID, table.PublisherHouseID,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		book.Title, book.Description, book.IsFree, book.Price, book.CoverURL, book.AuthorID, book.PublisherHouseID,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	return dberr.Wrap(err, resourceBook, "create_book")
}

func (repository *PostgresRepository) Update(context context.Context, book *Book) error {
	table := schema.CatalogBook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.Title, table.Description, table.IsFree, table.Price, table.CoverURL, table.UpdatedAt,
		table.ID,
		table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		book.ID, book.Title, book.Description, book.IsFree, book.Price, book.CoverURL,
	).Scan(&book.UpdatedAt)
	return dberr.Wrap(err, resourceBook, "update_book")
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceBook, "delete_book")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceBook)
	}
	return nil
}

func (repository *PostgresRepository) ListByAuthor(context context.Context, authorID int64, limit, offset int) ([]*Book, int, error) {
	total, err := repository.CountByAuthor(context, authorID)
	if err != nil {
		return nil, 0, err
	}

	table := schema.CatalogBook
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC LIMIT $2 OFFSET $3`,
		bookColumns, table.Table, table.AuthorID, table.CreatedAt, table.ID,
	)

	rows, err := repository.pool.Query(context, query, authorID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceBook, "list_books_by_author")
	}
	defer rows.Close()

	books := make([]*Book, 0, limit)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceBook, "scan_book")
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceBook, "list_books_by_author")
	}

	return books, total, nil
}

func (repository *PostgresRepository) CountByAuthor(context context.Context, authorID int64) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.AuthorID)

	var count int
	if err := repository.pool.QueryRow(context, query, authorID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, resourceBook, "count_books_by_author")
	}
	return count, nil
}
