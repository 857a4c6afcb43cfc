// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package house

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/loginkey"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher = sec.PasswordHasher

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(claims sec.Claims, ttl time.Duration) (string, error)
}

// Service implements publisher house use cases.
type Service struct {
	repository  Repository
	hasher      PasswordHasher
	decoy       *sec.Decoy
	tokenIssuer TokenIssuer
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, hasher PasswordHasher, tokens TokenIssuer, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repository:  repository,
		hasher:      hasher,
		decoy:       sec.NewDecoy(hasher),
		tokenIssuer: tokens,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a publisher house.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	LicenseImage *string
	LogoImage    *string
}

/*
Register creates an active, unverified publisher house.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *House: Created entity
  - error: CONFLICT or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*House, error) {
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("house_service_hash_failed: %w", err)
	}

	house := &House{
		Name:         input.Name,
		Email:        loginkey.Email(input.Email),
		PasswordHash: hashedPassword,
		LicenseImage: input.LicenseImage,
		LogoImage:    input.LogoImage,
		IsActive:     true,
	}

	if err := service.repository.Create(context, house); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("house_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "publisher_house_registered", slog.Int64("publisher_house_id", house.ID))
	return house, nil
}

// # Authentication Flow

// LoginResult is a successfully issued access token.
type LoginResult struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	PublisherHouseID int64  `json:"publisher_house_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
}

/*
Login checks credentials by email and issues an access token.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *LoginResult: Token and house identity
  - error: INVALID_CREDENTIALS, INACTIVE_ACCOUNT or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	house, err := service.repository.FindByEmail(context, loginkey.Email(email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.decoy.Verify(password)
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !service.hasher.Verify(password, house.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}
	if !house.IsActive {
		return nil, apperr.InactiveAccount()
	}

	token, err := service.tokenIssuer.Issue(sec.Claims{
		Subject:    house.Email,
		EntityType: sec.EntityPublisher,
		Role:       sec.RolePublisherHouse,
	}, service.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("house_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		AccessToken:      token,
		TokenType:        TokenType,
		ExpiresIn:        int64(service.tokenTTL.Seconds()),
		PublisherHouseID: house.ID,
		Name:             house.Name,
		Email:            house.Email,
	}, nil
}

// # Profile

// Me returns the caller's own house.
func (service *Service) Me(context context.Context, id int64) (*House, error) {
	return service.repository.FindByID(context, id)
}

// ProfileInput carries the optional profile changes. Nil fields are kept.
type ProfileInput struct {
	Name        *string
	Address     *string
	ContactInfo *string
	LogoImage   *string
}

// UpdateProfile applies a partial profile update.
func (service *Service) UpdateProfile(context context.Context, id int64, input ProfileInput) (*House, error) {
	house, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		house.Name = *input.Name
	}
	if input.Address != nil {
		house.Address = input.Address
	}
	if input.ContactInfo != nil {
		house.ContactInfo = input.ContactInfo
	}
	if input.LogoImage != nil {
		house.LogoImage = input.LogoImage
	}

	if err := service.repository.UpdateProfile(context, house); err != nil {
		return nil, err
	}
	return house, nil
}

// # Administration

// List returns a page of publisher houses.
func (service *Service) List(context context.Context, params pagination.Params) ([]*House, pagination.Meta, error) {
	houses, total, err := service.repository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return houses, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
UpdateStatus verifies, activates or deactivates a house.

Parameters:
  - context: context.Context
  - id: int64
  - status: Status

Returns:
  - *House: Updated entity
  - error: VALIDATION_ERROR when no flag is given, NOT_FOUND
*/
func (service *Service) UpdateStatus(context context.Context, id int64, status Status) (*House, error) {
	if status.IsActive == nil && status.IsVerified == nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldStatus,
			Message: "Provide is_active or is_verified",
		})
	}

	house, err := service.repository.UpdateStatus(context, id, status)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "publisher_house_status_changed",
		slog.Int64("publisher_house_id", house.ID),
		slog.Bool("is_active", house.IsActive),
		slog.Bool("is_verified", house.IsVerified),
	)
	return house, nil
}

// # Principal Resolution

// FindPrincipal resolves a token subject (email) to a principal.
func (service *Service) FindPrincipal(context context.Context, subject string) (*identity.Principal, error) {
	house, err := service.repository.FindByEmail(context, subject)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, identity.ErrPrincipalNotFound
		}
		return nil, err
	}

	return &identity.Principal{
		Kind:     sec.EntityPublisher,
		ID:       house.ID,
		Subject:  house.Email,
		Role:     sec.RolePublisherHouse,
		IsActive: house.IsActive,
	}, nil
}
