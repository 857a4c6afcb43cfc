// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book holds the minimal book catalog.

Books are owned either by a user (the author) or by a publisher house. The
author count drives the writer -> publisher promotion, and ownership gates
edits through [identity.RequireOwnerOrRole].
*/
package book

import (
	"time"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// Book is a catalog entry.
type Book struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description,omitempty"`
	IsFree           bool      `json:"is_free"`
	Price            *float64  `json:"price,omitempty"`
	CoverURL         *string   `json:"cover_url,omitempty"`
	AuthorID         *int64    `json:"author_id,omitempty"`
	PublisherHouseID *int64    `json:"publisher_house_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Owner returns the principal that owns the book. A book whose owner was
// deleted has the zero owner, which matches nobody.
func (book *Book) Owner() identity.Owner {
	switch {
	case book.AuthorID != nil:
		return identity.Owner{Kind: sec.EntityUser, ID: *book.AuthorID}
	case book.PublisherHouseID != nil:
		return identity.Owner{Kind: sec.EntityPublisher, ID: *book.PublisherHouseID}
	}
	return identity.Owner{}
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCoverURL    = "cover_url"

	resourceBook = "Book"
)
