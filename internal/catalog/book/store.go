// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository defines the data access contract for books.
type Repository interface {
	FindByID(context context.Context, id int64) (*Book, error)
	Create(context context.Context, book *Book) error
	Update(context context.Context, book *Book) error
	Delete(context context.Context, id int64) error

	// ListByAuthor returns one page of an author's books, newest first, and the total.
	ListByAuthor(context context.Context, authorID int64, limit, offset int) ([]*Book, int, error)

	// CountByAuthor counts the books whose author is the given user.
	CountByAuthor(context context.Context, authorID int64) (int, error)
}
