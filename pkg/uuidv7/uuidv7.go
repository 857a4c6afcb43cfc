// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered identifiers for
// request correlation and outbound OTP messages.
//
// Ordering by creation time keeps log searches and broker traces readable.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string. If the v7 clock sequence cannot be produced
// it falls back to a random v4 rather than failing the caller.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s parses as any UUID. Client supplied request IDs
// that fail this check are replaced.
func IsValid(s string) bool {
	return uuid.Validate(s) == nil
}
