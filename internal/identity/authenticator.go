// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// BearerPrefix is the only accepted Authorization scheme. It is matched
// case-sensitively with exactly one space.
const BearerPrefix = "Bearer "

// TokenVerifier checks a raw token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*sec.AuthClaims, error)
}

// Authenticator turns an Authorization header into a live [Principal].
type Authenticator struct {
	tokens    TokenVerifier
	directory Directory
}

// NewAuthenticator constructs an [Authenticator].
func NewAuthenticator(tokens TokenVerifier, directory Directory) *Authenticator {
	return &Authenticator{tokens: tokens, directory: directory}
}

/*
Authenticate resolves the principal behind an Authorization header value.

Description: The token only names the principal. Role, activity and admin
flags are read from the credential store on every call, so role transitions
and deactivations apply to the very next request.

Parameters:
  - context: context.Context
  - header: string (raw Authorization header value)

Returns:
  - *Principal: The active caller
  - error: MALFORMED_REQUEST, INVALID_CREDENTIALS, INACTIVE_ACCOUNT or INTERNAL_ERROR
*/
func (authenticator *Authenticator) Authenticate(context context.Context, header string) (*Principal, error) {

	// 1. Structural check of the header
	token, err := ParseBearer(header)
	if err != nil {
		return nil, err
	}

	// 2. Signature, algorithm and expiry
	claims, err := authenticator.tokens.Verify(token)
	if err != nil {
		return nil, apperr.InvalidCredentials().WithCause(err)
	}

	// 3. The entity type picks the credential store. Unknown kinds never fall through.
	finder, ok := authenticator.directory[claims.EntityType]
	if !ok || finder == nil {
		return nil, apperr.InvalidCredentials()
	}

	// 4. A vanished principal looks exactly like a forged token
	principal, err := finder.FindPrincipal(context, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, apperr.Internal(fmt.Errorf("identity_find_principal_failed: %w", err))
	}
	if principal == nil || principal.Kind != claims.EntityType {
		return nil, apperr.InvalidCredentials()
	}

	// 5. Known but switched off
	if !principal.IsActive {
		return nil, apperr.InactiveAccount()
	}

	return principal, nil
}

// ParseBearer extracts the token from "Bearer <token>".
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", apperr.MalformedRequest("Missing authorization header")
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", apperr.MalformedRequest("Invalid authorization scheme")
	}

	token := header[len(BearerPrefix):]
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", apperr.MalformedRequest("Invalid authorization format")
	}
	return token, nil
}
