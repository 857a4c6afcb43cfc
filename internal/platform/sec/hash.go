// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// # Argon2id Parameters

// Argon2Params controls the cost of a single Argon2id derivation.
//
// The values used to produce a hash are written into the encoded string, so a
// change here only affects new hashes; existing ones still verify.
type Argon2Params struct {
	Memory     uint32 // KiB
	Iterations uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultArgon2Params is the production cost profile (64 MiB, 3 passes, 2 lanes).
var DefaultArgon2Params = Argon2Params{
	Memory:     64 * 1024,
	Iterations: 3,
	Threads:    2,
	SaltLength: 16,
	KeyLength:  32,
}

// Hasher derives and verifies self-describing Argon2id password hashes of
// the form:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
type Hasher struct {
	params Argon2Params
}

// NewHasher creates a Hasher. Tests inject a cheap profile to stay fast.
func NewHasher(params Argon2Params) *Hasher {
	return &Hasher{params: params}
}

// Hash derives a fresh hash with a random salt. Two calls with the same
// password never return the same string.
func (hasher *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, hasher.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec_hash_salt_failed: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt,
		hasher.params.Iterations, hasher.params.Memory, hasher.params.Threads, hasher.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hasher.params.Memory, hasher.params.Iterations, hasher.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. A malformed or foreign
// hash never matches; it is not an error.
func (hasher *Hasher) Verify(password, encoded string) bool {
	params, salt, expected, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	actual := argon2.IDKey([]byte(password), salt,
		params.Iterations, params.Memory, params.Threads, params.KeyLength)

	return subtle.ConstantTimeCompare(actual, expected) == 1
}

// # Unknown Accounts

// PasswordHasher is the hashing contract shared by the credential services.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// Decoy burns one full verification for logins whose account lookup missed,
// so an unknown login key costs the same as a wrong password.
//
// The throwaway hash is derived on first use with the wrapped hasher's own
// cost profile.
type Decoy struct {
	hasher PasswordHasher
	once   sync.Once
	hash   string
}

// NewDecoy wraps hasher.
func NewDecoy(hasher PasswordHasher) *Decoy {
	return &Decoy{hasher: hasher}
}

// Verify runs password against the throwaway hash. It never matches.
func (decoy *Decoy) Verify(password string) {
	decoy.once.Do(func() {
		decoy.hash, _ = decoy.hasher.Hash("inkwell-decoy-password")
	})
	decoy.hasher.Verify(password, decoy.hash)
}

// decodeHash splits an encoded hash into its parameters, salt and key.
func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("sec_hash_format_invalid")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, fmt.Errorf("sec_hash_version_invalid")
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Threads); err != nil {
		return params, nil, nil, fmt.Errorf("sec_hash_params_invalid: %w", err)
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Threads == 0 {
		return params, nil, nil, fmt.Errorf("sec_hash_params_invalid")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return params, nil, nil, fmt.Errorf("sec_hash_salt_invalid")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, fmt.Errorf("sec_hash_key_invalid")
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))
	return params, salt, key, nil
}
