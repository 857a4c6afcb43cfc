// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides lenient conversions for query string values.

Malformed input yields the caller's fallback instead of an error, which suits
optional parameters such as page and limit. Path identifiers must use the
strict parser in the request package instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// IntOr parses raw as a base-10 int, returning fallback when raw is blank or
// malformed.
func IntOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}

	return fallback
}
