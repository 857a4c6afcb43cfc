// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/loginkey"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher = sec.PasswordHasher

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(claims sec.Claims, ttl time.Duration) (string, error)
}

// Service implements administrator use cases.
type Service struct {
	repository     Repository
	hasher         PasswordHasher
	decoy          *sec.Decoy
	tokenIssuer    TokenIssuer
	tokenTTL       time.Duration
	enrollmentCode string
	logger         *slog.Logger
	now            func() time.Time
}

// NewService constructs a new [Service]. enrollmentCode must be non-empty;
// configuration loading guarantees it.
func NewService(
	repository Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	tokenTTL time.Duration,
	enrollmentCode string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repository:     repository,
		hasher:         hasher,
		decoy:          sec.NewDecoy(hasher),
		tokenIssuer:    tokens,
		tokenTTL:       tokenTTL,
		enrollmentCode: enrollmentCode,
		logger:         logger,
		now:            time.Now,
	}
}

// # Enrollment

// RegisterInput holds the data required to enroll an administrator.
type RegisterInput struct {
	Username    string
	Email       string
	PhoneNumber string
	Password    string
	Role        sec.AdminRole
	AdminCode   string
}

// codeMatches compares digests so neither content nor length of the
// configured code leaks through timing.
func (service *Service) codeMatches(presented string) bool {
	if service.enrollmentCode == "" {
		return false
	}
	want := sha256.Sum256([]byte(service.enrollmentCode))
	got := sha256.Sum256([]byte(presented))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

/*
Register enrolls a new administrator.

Description: The presented code must equal the configured enrollment code.
Capability flags are derived from the role; they are never taken from input.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Admin: Created entity
  - error: FORBIDDEN on a wrong code, CONFLICT, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Admin, error) {
	if !service.codeMatches(input.AdminCode) {
		return nil, apperr.Forbidden("Invalid admin code")
	}

	role := input.Role
	if role == "" {
		role = sec.AdminRoleContent
	}
	if !role.Valid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldRole, Message: "Unknown admin role"})
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("admin_service_hash_failed: %w", err)
	}

	admin := &Admin{
		Username:     loginkey.Username(input.Username),
		Email:        loginkey.Email(input.Email),
		PhoneNumber:  pointer.NonEmpty(input.PhoneNumber),
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
		Capabilities: sec.DeriveCapabilities(role),
	}

	if err := service.repository.Create(context, admin); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("admin_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "admin_enrolled",
		slog.Int64("admin_id", admin.ID),
		slog.String("role", string(admin.Role)),
	)
	return admin, nil
}

// # Authentication Flow

// LoginResult is a successfully issued access token.
type LoginResult struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	AdminID      int64         `json:"admin_id"`
	Username     string        `json:"username"`
	Role         sec.AdminRole `json:"role"`
	IsSuperAdmin bool          `json:"is_super_admin"`
	Capabilities []string      `json:"capabilities"`
}

/*
Login checks credentials by email, records the login time and issues a token
carrying the super-admin flag and capabilities.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *LoginResult: Token and admin identity
  - error: INVALID_CREDENTIALS, INACTIVE_ACCOUNT or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	admin, err := service.repository.FindByEmail(context, loginkey.Email(email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.decoy.Verify(password)
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !service.hasher.Verify(password, admin.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}
	if !admin.IsActive {
		return nil, apperr.InactiveAccount()
	}

	// Bookkeeping only; a failure here does not block the login.
	if err := service.repository.TouchLastLogin(context, admin.ID, service.now().UTC()); err != nil {
		service.logger.WarnContext(context, "admin_last_login_failed",
			slog.Int64("admin_id", admin.ID),
			slog.String("error", err.Error()),
		)
	}

	capabilities := admin.Capabilities.List()
	token, err := service.tokenIssuer.Issue(sec.Claims{
		Subject:      admin.Email,
		EntityType:   sec.EntityAdmin,
		Role:         string(admin.Role),
		IsSuperAdmin: admin.IsSuperAdmin,
		Capabilities: capabilities,
	}, service.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("admin_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		AccessToken:  token,
		TokenType:    TokenType,
		ExpiresIn:    int64(service.tokenTTL.Seconds()),
		AdminID:      admin.ID,
		Username:     admin.Username,
		Role:         admin.Role,
		IsSuperAdmin: admin.IsSuperAdmin,
		Capabilities: capabilities,
	}, nil
}

// # Profile

// Me returns the caller's own admin account.
func (service *Service) Me(context context.Context, id int64) (*Admin, error) {
	return service.repository.FindByID(context, id)
}

// UpdateMe changes the caller's phone number. A nil phone number keeps the
// stored one. Admins cannot change their own role.
func (service *Service) UpdateMe(context context.Context, id int64, phoneNumber *string) (*Admin, error) {
	admin, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if phoneNumber == nil {
		return admin, nil
	}

	admin.PhoneNumber = phoneNumber
	if err := service.repository.Update(context, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// # Admin Management

// List returns a page of admins.
func (service *Service) List(context context.Context, params pagination.Params) ([]*Admin, pagination.Meta, error) {
	admins, total, err := service.repository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return admins, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// UpdateInput carries the optional changes to another admin. Nil fields are kept.
type UpdateInput struct {
	PhoneNumber *string
	Role        *sec.AdminRole
}

/*
Update changes another admin's phone number or role.

Description: A role change re-derives every capability flag. The acting admin
can never target itself through this path.

Parameters:
  - context: context.Context
  - actor: *identity.Principal
  - id: int64
  - input: UpdateInput

Returns:
  - *Admin: Updated entity
  - error: FORBIDDEN, NOT_FOUND, VALIDATION_ERROR or CONFLICT
*/
func (service *Service) Update(context context.Context, actor *identity.Principal, id int64, input UpdateInput) (*Admin, error) {
	if err := identity.RequireNotSelf(actor, sec.EntityAdmin, id); err != nil {
		return nil, err
	}

	admin, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.PhoneNumber != nil {
		admin.PhoneNumber = input.PhoneNumber
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldRole, Message: "Unknown admin role"})
		}
		admin.Role = *input.Role
		admin.Capabilities = sec.DeriveCapabilities(admin.Role)
	}

	if err := service.repository.Update(context, admin); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "admin_updated",
		slog.Int64("admin_id", admin.ID),
		slog.Int64("actor_id", actor.ID),
		slog.String("role", string(admin.Role)),
	)
	return admin, nil
}

/*
Delete removes another admin.

Parameters:
  - context: context.Context
  - actor: *identity.Principal
  - id: int64

Returns:
  - error: FORBIDDEN on self-deletion, NOT_FOUND
*/
func (service *Service) Delete(context context.Context, actor *identity.Principal, id int64) error {
	if err := identity.RequireNotSelf(actor, sec.EntityAdmin, id); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "admin_deleted",
		slog.Int64("admin_id", id),
		slog.Int64("actor_id", actor.ID),
	)
	return nil
}

// # Principal Resolution

// FindPrincipal resolves a token subject (email) to a principal with the
// stored super-admin flag and capabilities.
func (service *Service) FindPrincipal(context context.Context, subject string) (*identity.Principal, error) {
	admin, err := service.repository.FindByEmail(context, subject)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, identity.ErrPrincipalNotFound
		}
		return nil, err
	}

	return &identity.Principal{
		Kind:         sec.EntityAdmin,
		ID:           admin.ID,
		Subject:      admin.Email,
		Role:         string(admin.Role),
		IsActive:     admin.IsActive,
		IsSuperAdmin: admin.IsSuperAdmin,
		Capabilities: admin.Capabilities,
	}, nil
}
