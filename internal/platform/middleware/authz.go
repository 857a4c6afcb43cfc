// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// PrincipalAuthenticator resolves an Authorization header into a principal.
//
// Defined here so handlers can be tested with a stub instead of a real
// token service and database.
type PrincipalAuthenticator interface {
	Authenticate(context context.Context, header string) (*identity.Principal, error)
}

// Authenticate requires a valid bearer token and injects the resolved
// [*identity.Principal] into the request context.
//
// # Flow
//  1. Read the 'Authorization' header.
//  2. Resolve it through the [PrincipalAuthenticator].
//  3. On failure, abort with the authenticator's error (401 or 403).
//  4. On success, continue with the principal in context.
func Authenticate(authenticator PrincipalAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal, err := authenticator.Authenticate(request.Context(), request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			ctxutil.GetLogger(ctx).DebugContext(ctx, "principal_authenticated",
				"kind", string(principal.Kind),
				"principal_id", principal.ID,
			)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that carry no principal.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.MalformedRequest("Missing authorization header"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// guard turns an authorization predicate into middleware.
func guard(check func(*identity.Principal) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())
			if principal == nil {
				respond.Error(writer, request, apperr.MalformedRequest("Missing authorization header"))
				return
			}
			if err := check(principal); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireKind blocks principals from any other credential store.
func RequireKind(kind sec.EntityType) func(http.Handler) http.Handler {
	return guard(func(principal *identity.Principal) error {
		return identity.RequireKind(principal, kind)
	})
}

// RequireRole blocks principals whose role is not one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return guard(func(principal *identity.Principal) error {
		return identity.RequireAnyRole(principal, roles...)
	})
}

// RequireSuperAdmin blocks everyone but super admins.
func RequireSuperAdmin() func(http.Handler) http.Handler {
	return guard(identity.RequireSuperAdmin)
}

// RequireCapability blocks admins lacking capability.
func RequireCapability(capability sec.Capability) func(http.Handler) http.Handler {
	return guard(func(principal *identity.Principal) error {
		return identity.RequireCapability(principal, capability)
	})
}
