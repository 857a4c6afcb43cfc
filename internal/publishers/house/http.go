// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package house

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// Handler implements publisher house endpoints.
type Handler struct {
	houseService  *Service
	authenticator middleware.PrincipalAuthenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator middleware.PrincipalAuthenticator) *Handler {
	return &Handler{houseService: service, authenticator: authenticator}
}

// Routes returns the self-service router, mounted at /publishers/auth.
//
// # Endpoints
//   - POST      /register : Creates a publisher house.
//   - POST      /login    : Returns a bearer token.
//   - GET/PATCH /me       : Own profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(handler.authenticator))
		r.Use(middleware.RequireKind(sec.EntityPublisher))

		r.Get("/me", handler.me)
		r.Patch("/me", handler.updateMe)
	})

	return router
}

// AdminRoutes returns the management router, mounted at /admin/publishers.
//
// # Endpoints
//   - GET /            : Paginated list.
//   - PUT /{id}/status : Verify, activate or deactivate.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.Authenticate(handler.authenticator))
	router.Use(middleware.RequireCapability(sec.CapManagePublishers))

	router.Get("/", handler.list)
	router.Put("/{id}/status", handler.updateStatus)

	return router
}

// # Request Payloads

type registerRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	LicenseImage    *string `json:"license_image"`
	LogoImage       *string `json:"logo_image"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	ContactInfo *string `json:"contact_info"`
	LogoImage   *string `json:"logo_image"`
}

/*
POST /api/v1/publishers/auth/register

Response:
  - 201: House
  - 400: VALIDATION_ERROR or CONFLICT
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldConfirmPassword, input.ConfirmPassword != input.Password, "Passwords do not match")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	house, err := handler.houseService.Register(request.Context(), RegisterInput{
		Name:         input.Name,
		Email:        input.Email,
		Password:     input.Password,
		LicenseImage: input.LicenseImage,
		LogoImage:    input.LogoImage,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, house)
}

// POST /api/v1/publishers/auth/login
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.houseService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// GET /api/v1/publishers/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	house, err := handler.houseService.Me(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, house)
}

// PATCH /api/v1/publishers/auth/me
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
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 100)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	house, err := handler.houseService.UpdateProfile(request.Context(), principal.ID, ProfileInput{
		Name:        input.Name,
		Address:     input.Address,
		ContactInfo: input.ContactInfo,
		LogoImage:   input.LogoImage,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, house)
}

// GET /api/v1/admin/publishers
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	houses, meta, err := handler.houseService.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, houses, meta)
}

// PUT /api/v1/admin/publishers/{id}/status
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Status
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	house, err := handler.houseService.UpdateStatus(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, house)
}
