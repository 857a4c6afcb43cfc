// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package otp issues and verifies short-lived one-time codes bound to an email.

Architecture:

  - Ledger: Stores at most one live code per email. Issue overwrites, Verify
    consumes. Two implementations: [MemoryLedger] for a single process and
    [RedisLedger] for a fleet.
  - Notifier: Delivers an issued code (log sink or RabbitMQ queue).
  - Service: Orchestrates issue + delivery and maps failures to INVALID_OTP.

A code verifies at most once. A wrong code leaves the live entry untouched so
the holder of the right code can still use it.
*/
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/pkg/loginkey"
)

// CodeLength is the number of decimal digits in a code.
const CodeLength = 6

// Ledger is the store of live one-time codes.
type Ledger interface {
	// Issue creates a fresh code for email, replacing any previous one.
	Issue(context context.Context, email string) (string, error)

	// Verify reports whether code is the live code for email. A match
	// consumes the entry.
	Verify(context context.Context, email, code string) (bool, error)
}

// # Code Generation

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly distributed six digit code from the
// system CSPRNG.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otp_generate_failed: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// # In-Memory Ledger

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryLedger keeps codes in a mutex-guarded map. Entries live only as long
// as the process.
type MemoryLedger struct {
	mu       sync.Mutex
	entries  map[string]entry
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

// MemoryOption customises a [MemoryLedger].
type MemoryOption func(*MemoryLedger)

// WithClock replaces the wall clock used for expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(ledger *MemoryLedger) { ledger.now = now }
}

// WithGenerator replaces the code generator.
func WithGenerator(generate func() (string, error)) MemoryOption {
	return func(ledger *MemoryLedger) { ledger.generate = generate }
}

// WithTTL overrides the default five minute lifetime.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(ledger *MemoryLedger) { ledger.ttl = ttl }
}

// NewMemoryLedger constructs an empty ledger.
func NewMemoryLedger(options ...MemoryOption) *MemoryLedger {
	ledger := &MemoryLedger{
		entries:  make(map[string]entry),
		ttl:      constants.OTPTTL,
		now:      time.Now,
		generate: GenerateCode,
	}
	for _, option := range options {
		option(ledger)
	}
	return ledger
}

// Issue implements [Ledger].
func (ledger *MemoryLedger) Issue(_ context.Context, email string) (string, error) {
	code, err := ledger.generate()
	if err != nil {
		return "", err
	}

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	ledger.entries[loginkey.Email(email)] = entry{code: code, expiresAt: ledger.now().Add(ledger.ttl)}
	return code, nil
}

// Verify implements [Ledger]. The lookup, expiry check and delete happen
// under one lock, so two concurrent calls with the right code cannot both win.
func (ledger *MemoryLedger) Verify(_ context.Context, email, code string) (bool, error) {
	key := loginkey.Email(email)

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	current, ok := ledger.entries[key]
	if !ok {
		return false, nil
	}

	if !ledger.now().Before(current.expiresAt) {
		delete(ledger.entries, key)
		return false, nil
	}

	if current.code != code {
		return false, nil
	}

	delete(ledger.entries, key)
	return true, nil
}

// Len returns the number of entries, expired or not.
func (ledger *MemoryLedger) Len() int {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return len(ledger.entries)
}

// Sweep drops every expired entry and returns how many were removed.
func (ledger *MemoryLedger) Sweep() int {
	now := ledger.now()

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	removed := 0
	for key, current := range ledger.entries {
		if !now.Before(current.expiresAt) {
			delete(ledger.entries, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs [MemoryLedger.Sweep] every interval until context is
// cancelled. Without it, abandoned codes are only dropped when verified.
func (ledger *MemoryLedger) StartSweeper(context context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ledger.Sweep()
			case <-context.Done():
				return
			}
		}
	}()
}
