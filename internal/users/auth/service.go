// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/loginkey"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

// # Contracts & Types

// PasswordHasher hashes and checks passwords.
type PasswordHasher = sec.PasswordHasher

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(claims sec.Claims, ttl time.Duration) (string, error)
}

// Service implements reader-side account use cases.
type Service struct {
	userRepository UserRepository
	bookCounter    BookCounter
	hasher         PasswordHasher
	decoy          *sec.Decoy
	tokenIssuer    TokenIssuer
	tokenTTL       time.Duration
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	books BookCounter,
	hasher PasswordHasher,
	tokens TokenIssuer,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		bookCounter:    books,
		hasher:         hasher,
		decoy:          sec.NewDecoy(hasher),
		tokenIssuer:    tokens,
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username    string
	FullName    string
	PhoneNumber string
	Email       string
	Password    string
	Role        sec.UserRole
}

/*
Register hashes the password and persists a new account.

Description: Only reader and writer may be chosen at registration. Publisher is
reachable solely through promotion.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: VALIDATION_ERROR, CONFLICT or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	role := input.Role
	if role == "" {
		role = sec.RoleReader
	}
	if role != sec.RoleReader && role != sec.RoleWriter {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: reader, writer",
		})
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     loginkey.Username(input.Username),
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
		Email:        pointer.NonEmpty(loginkey.Email(input.Email)),
		SocialLinks:  map[string]string{},
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string

	// RequiredRole, when set, rejects a correct login whose role differs.
	RequiredRole sec.UserRole
}

// LoginResult is a successfully issued access token.
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	Role        sec.UserRole `json:"role"`
	UserID      int64        `json:"user_id"`
	User        *User        `json:"-"`
}

/*
Login checks credentials and issues an access token.

Description: An unknown username and a wrong password produce the same
INVALID_CREDENTIALS error.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token and role
  - error: INVALID_CREDENTIALS, INACTIVE_ACCOUNT, FORBIDDEN or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.userRepository.FindByUsername(context, loginkey.Username(input.Username))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.decoy.Verify(input.Password)
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	if !user.IsActive {
		return nil, apperr.InactiveAccount()
	}

	if input.RequiredRole != "" && user.Role != input.RequiredRole {
		return nil, apperr.Forbidden(fmt.Sprintf("User does not have %s role", input.RequiredRole))
	}

	token, err := service.tokenIssuer.Issue(sec.Claims{
		Subject:    user.Username,
		EntityType: sec.EntityUser,
		Role:       string(user.Role),
	}, service.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresIn:   int64(service.tokenTTL.Seconds()),
		Role:        user.Role,
		UserID:      user.ID,
		User:        user,
	}, nil
}

// # Profile

// Me returns the caller's own account.
func (service *Service) Me(context context.Context, userID int64) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// ProfileInput carries the optional profile changes. Nil fields are kept.
type ProfileInput struct {
	FullName    *string
	Bio         *string
	SocialLinks map[string]string
}

/*
UpdateProfile applies a partial profile update.

Parameters:
  - context: context.Context
  - userID: int64
  - input: ProfileInput

Returns:
  - *User: Updated entity
  - error: NOT_FOUND or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, userID int64, input ProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.SocialLinks != nil {
		user.SocialLinks = input.SocialLinks
	}

	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Administration

// SetActive switches an account on or off. Used by user administrators.
func (service *Service) SetActive(context context.Context, userID int64, active bool) error {
	if err := service.userRepository.SetActive(context, userID, active); err != nil {
		return err
	}

	service.logger.InfoContext(context, "user_status_changed",
		slog.Int64("user_id", userID),
		slog.Bool("is_active", active),
	)
	return nil
}

// MarkEmailVerified flags the account owning email as verified. It is the
// hook called after a successful OTP verification.
func (service *Service) MarkEmailVerified(context context.Context, email string) error {
	return service.userRepository.MarkEmailVerified(context, loginkey.Email(email))
}

// # Principal Resolution

/*
FindPrincipal resolves a token subject (username) to a principal.

Parameters:
  - context: context.Context
  - subject: string

Returns:
  - *identity.Principal: Live role and activity from the store
  - error: identity.ErrPrincipalNotFound or storage errors
*/
func (service *Service) FindPrincipal(context context.Context, subject string) (*identity.Principal, error) {
	user, err := service.userRepository.FindByUsername(context, subject)
	if err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) && appError.Code == apperr.CodeNotFound {
			return nil, identity.ErrPrincipalNotFound
		}
		return nil, err
	}

	return &identity.Principal{
		Kind:     sec.EntityUser,
		ID:       user.ID,
		Subject:  user.Username,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	}, nil
}
