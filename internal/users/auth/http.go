// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the reader-side account endpoints.
type Handler struct {
	authService   *Service
	authenticator middleware.PrincipalAuthenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator middleware.PrincipalAuthenticator) *Handler {
	return &Handler{authService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] configured with account routes.
//
// # Endpoints
//   - POST  /register           : Creates a reader or writer account.
//   - POST  /login              : Returns a bearer token.
//   - POST  /login/{role}       : Same, but only for accounts holding role.
//   - GET   /me                 : Current account.
//   - PATCH /me                 : Profile update.
//   - POST  /upgrade/writer     : reader -> writer.
//   - POST  /upgrade/publisher  : writer -> publisher.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/login/{role}", handler.login)

	// User-only endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(handler.authenticator))
		r.Use(middleware.RequireKind(sec.EntityUser))

		r.Get("/me", handler.me)
		r.Patch("/me", handler.updateMe)

		// Role preconditions are checked by the service so they surface as CONFLICT
		r.Post("/upgrade/writer", handler.upgradeWriter)
		r.Post("/upgrade/publisher", handler.upgradePublisher)
	})

	return router
}

// AdminRoutes returns the user management router, mounted at /admin/users.
//
// # Endpoints
//   - PUT /{id}/status : Activate or deactivate an account.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.Authenticate(handler.authenticator))
	router.Use(middleware.RequireCapability(sec.CapManageUsers))

	router.Put("/{id}/status", handler.updateStatus)

	return router
}

// # Request Payloads

type registerRequest struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type statusRequest struct {
	IsActive *bool `json:"is_active"`
}

type profileRequest struct {
	FullName    *string           `json:"full_name"`
	Bio         *string           `json:"bio"`
	SocialLinks map[string]string `json:"social_links"`
}

/*
POST /api/v1/auth/register

Request:
  - Body: registerRequest

Response:
  - 201: User
  - 400: VALIDATION_ERROR or CONFLICT
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		Required(FieldPhoneNumber, input.PhoneNumber).
		Phone(FieldPhoneNumber, input.PhoneNumber).
		MaxLen(FieldFullName, input.FullName, 100).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role, string(sec.RoleReader), string(sec.RoleWriter))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Password:    input.Password,
		Role:        sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login and /api/v1/auth/login/{role}

Response:
  - 200: LoginResult
  - 401: INVALID_CREDENTIALS
  - 403: INACTIVE_ACCOUNT or FORBIDDEN (role mismatch)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role := requestutil.Param(request, "role")

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)
	if role != "" {
		validator.Custom(FieldRole, !sec.UserRole(role).Valid(), "Must be one of: reader, writer, publisher")
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Username:     input.Username,
		Password:     input.Password,
		RequiredRole: sec.UserRole(role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// GET /api/v1/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// PATCH /api/v1/auth/me
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.FullName != nil {
		validator.MaxLen(FieldFullName, *input.FullName, 100)
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, 2000)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), principal.ID, ProfileInput{
		FullName:    input.FullName,
		Bio:         input.Bio,
		SocialLinks: input.SocialLinks,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// POST /api/v1/auth/upgrade/writer
func (handler *Handler) upgradeWriter(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpgradeToWriter(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// POST /api/v1/auth/upgrade/publisher
func (handler *Handler) upgradePublisher(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpgradeToPublisher(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// PUT /api/v1/admin/users/{id}/status
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input statusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.IsActive == nil {
		respond.Error(writer, request, validate.RequiredError(FieldIsActive, "This field is required"))
		return
	}

	if err := handler.authService.SetActive(request.Context(), id, *input.IsActive); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
