// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity resolves bearer tokens into principals and decides what those
principals may do.

Architecture:

  - Principal: The authenticated caller, loaded fresh from its credential store.
  - Directory: One [Finder] per entity type. The token's "entity_type" claim
    picks the finder, so a publisher token can never resolve to a user row.
  - Authorizer: Pure predicates over a [Principal] returning nil or a
    FORBIDDEN [apperr.AppError]. Every predicate fails closed.

The package knows nothing about HTTP; the middleware package adapts it.
*/
package identity

import (
	"context"
	"errors"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// ErrPrincipalNotFound is returned by a [Finder] when no row matches the
// subject. The authenticator reports it exactly like a bad token.
var ErrPrincipalNotFound = errors.New("principal not found")

// Principal is the authenticated caller of a request.
type Principal struct {
	Kind         sec.EntityType
	ID           int64
	Subject      string // login key: username for users, email otherwise
	Role         string
	IsActive     bool
	IsSuperAdmin bool
	Capabilities sec.Capabilities
}

// Finder loads a principal of one kind by its login key.
type Finder interface {
	FindPrincipal(context context.Context, subject string) (*Principal, error)
}

// FinderFunc adapts a plain function to [Finder].
type FinderFunc func(context context.Context, subject string) (*Principal, error)

// FindPrincipal implements [Finder].
func (f FinderFunc) FindPrincipal(context context.Context, subject string) (*Principal, error) {
	return f(context, subject)
}

// Directory routes lookups to the credential store of each entity type.
type Directory map[sec.EntityType]Finder

// Owner identifies the owner of a resource. Kind matters because identifiers
// are only unique within one credential store.
type Owner struct {
	Kind sec.EntityType
	ID   int64
}

// Is reports whether p is this owner.
func (o Owner) Is(p *Principal) bool {
	return p != nil && o.Kind != "" && o.ID != 0 && p.Kind == o.Kind && p.ID == o.ID
}
