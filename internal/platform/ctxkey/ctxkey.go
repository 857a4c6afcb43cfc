// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys for per-request values. Only ctxutil
// and respond read them; everything else goes through ctxutil accessors.
package ctxkey

type key int

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = iota

	// KeyPrincipal carries the authenticated *identity.Principal.
	KeyPrincipal

	// KeyLogger carries the request-scoped *slog.Logger.
	KeyLogger
)
