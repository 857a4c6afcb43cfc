// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package loginkey canonicalizes the strings principals log in with.
//
// # Usage
//
// Usernames and emails arrive from many keyboards and input methods. The same
// visible name can be typed as different code point sequences ("é" precomposed
// vs "e" + combining acute), so every lookup and every insert goes through
// this package first.
package loginkey

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Username returns the NFC form of s without surrounding whitespace.
// Usernames stay case-sensitive.
func Username(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Email returns the NFC, Unicode case-folded form of s without surrounding whitespace.
func Email(s string) string {
	// Casers are stateful; one per call keeps this safe for concurrent use.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
