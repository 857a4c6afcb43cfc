// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds the optional fields of entities and partial updates.

Nullable columns (email, phone number, bio) map to *T in Go; these helpers keep
the conversions out of service code.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// NonEmpty returns nil for a blank string, so an omitted optional field is
// stored as NULL and never collides with another row's empty string under a
// UNIQUE constraint.
func NonEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
