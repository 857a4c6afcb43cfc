// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// Service implements book use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// Input carries the editable fields of a book.
type Input struct {
	Title       string
	Description *string
	IsFree      bool
	Price       *float64
	CoverURL    *string
}

// validatePricing keeps the free flag and the price consistent: a free book
// has no price (or zero), a paid book has a positive one.
func validatePricing(input Input) error {
	if input.IsFree {
		if input.Price != nil && *input.Price != 0 {
			return apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldPrice, Message: "Free books cannot have a price"})
		}
		return nil
	}
	if input.Price == nil || *input.Price <= 0 {
		return apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldPrice, Message: "Paid books need a positive price"})
	}
	return nil
}

/*
Create stores a new book owned by the caller.

Description: Writers and promoted publishers author books as users. Publisher
houses own books as organisations. Readers and admins cannot create books.

Parameters:
  - context: context.Context
  - actor: *identity.Principal
  - input: Input

Returns:
  - *Book: Created entity
  - error: FORBIDDEN or VALIDATION_ERROR
*/
func (service *Service) Create(context context.Context, actor *identity.Principal, input Input) (*Book, error) {
	if err := validatePricing(input); err != nil {
		return nil, err
	}

	book := &Book{
		Title:       input.Title,
		Description: input.Description,
		IsFree:      input.IsFree,
		Price:       input.Price,
		CoverURL:    input.CoverURL,
	}

	switch {
	case identity.RequireKind(actor, sec.EntityUser) == nil:
		if err := identity.RequireAnyRole(actor, string(sec.RoleWriter), string(sec.RolePublisher)); err != nil {
			return nil, err
		}
		book.AuthorID = &actor.ID
	case identity.RequireKind(actor, sec.EntityPublisher) == nil:
		book.PublisherHouseID = &actor.ID
	default:
		return nil, apperr.Forbidden("Only writers, publishers and publisher houses can create books")
	}

	if err := service.repository.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "book_created",
		slog.Int64("book_id", book.ID),
		slog.String("owner_kind", string(actor.Kind)),
		slog.Int64("owner_id", actor.ID),
	)
	return book, nil
}

/*
Update replaces the editable fields of a book.

Parameters:
  - context: context.Context
  - actor: *identity.Principal
  - id: int64
  - input: Input

Returns:
  - *Book: Updated entity
  - error: NOT_FOUND, FORBIDDEN or VALIDATION_ERROR
*/
func (service *Service) Update(context context.Context, actor *identity.Principal, id int64, input Input) (*Book, error) {
	if err := validatePricing(input); err != nil {
		return nil, err
	}

	book, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := identity.RequireOwnerOrRole(actor, book.Owner(), string(sec.RolePublisher)); err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Description = input.Description
	book.IsFree = input.IsFree
	book.Price = input.Price
	book.CoverURL = input.CoverURL

	if err := service.repository.Update(context, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book owned by the caller, or any book for a promoted publisher.
func (service *Service) Delete(context context.Context, actor *identity.Principal, id int64) error {
	book, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := identity.RequireOwnerOrRole(actor, book.Owner(), string(sec.RolePublisher)); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "book_deleted",
		slog.Int64("book_id", id),
		slog.Int64("actor_id", actor.ID),
	)
	return nil
}

// ListByAuthor returns a page of an author's books.
func (service *Service) ListByAuthor(context context.Context, authorID int64, params pagination.Params) ([]*Book, pagination.Meta, error) {
	books, total, err := service.repository.ListByAuthor(context, authorID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return books, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// CountAuthoredBooks reports how many books the user authored. It backs the
// writer -> publisher promotion rule.
func (service *Service) CountAuthoredBooks(context context.Context, userID int64) (int, error) {
	return service.repository.CountByAuthor(context, userID)
}
