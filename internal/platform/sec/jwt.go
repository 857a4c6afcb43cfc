// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret the token service accepts.
const MinSecretLength = 32

// ErrInvalidToken is returned by [TokenService.Verify] for every failure:
// bad signature, wrong algorithm, expiry, missing claims. Callers must not
// branch on the cause.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the application payload handed to [TokenService.Issue].
type Claims struct {
	Subject      string
	EntityType   EntityType
	Role         string
	IsSuperAdmin bool
	Capabilities []string
}

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The role and flags are a snapshot taken at login. The authenticator reloads
// them from the store, so a promotion is effective on the next request even
// though old tokens still carry the old role.
type AuthClaims struct {
	jwt.RegisteredClaims

	EntityType   EntityType `json:"entity_type"`
	Role         string     `json:"role"`
	IsSuperAdmin bool       `json:"is_super_admin,omitempty"`
	Capabilities []string   `json:"capabilities,omitempty"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for iat/exp and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) { service.now = now }
}

// NewTokenService creates a new TokenService signing with secret.
func NewTokenService(secret, issuer string, options ...TokenOption) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: token secret must be at least %d bytes", MinSecretLength)
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service, nil
}

// Issue signs claims into a token that expires ttl from now.
func (service *TokenService) Issue(claims Claims, ttl time.Duration) (string, error) {
	if claims.Subject == "" || !claims.EntityType.Valid() {
		return "", fmt.Errorf("sec: cannot issue token without subject and entity type")
	}

	currentTime := service.now()
	payload := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
		},
		EntityType: claims.EntityType,
		Role:       claims.Role,
	}

	// Admin-only claims
	if claims.EntityType == EntityAdmin {
		payload.IsSuperAdmin = claims.IsSuperAdmin
		payload.Capabilities = claims.Capabilities
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks signature, algorithm, issuer and expiry of a token string.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || !claims.EntityType.Valid() {
		return nil, fmt.Errorf("%w: missing subject or entity type", ErrInvalidToken)
	}

	return claims, nil
}
