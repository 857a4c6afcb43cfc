// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/slice"
)

// Handler implements administrator endpoints.
type Handler struct {
	adminService  *Service
	authenticator middleware.PrincipalAuthenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator middleware.PrincipalAuthenticator) *Handler {
	return &Handler{adminService: service, authenticator: authenticator}
}

// Routes returns the admin router, mounted at /admin.
//
// # Endpoints
//   - POST      /auth/register : Enrollment (admin_code required).
//   - POST      /auth/login    : Returns a bearer token.
//   - GET/PATCH /me            : Own account.
//   - GET       /admins        : Super admin only.
//   - PUT       /admins/{id}   : Super admin only, never self.
//   - DELETE    /admins/{id}   : Super admin only, never self.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/auth/register", handler.register)
	router.Post("/auth/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(handler.authenticator))
		r.Use(middleware.RequireKind(sec.EntityAdmin))

		r.Get("/me", handler.me)
		r.Patch("/me", handler.updateMe)

		r.Route("/admins", func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin())
			r.Get("/", handler.list)
			r.Put("/{id}", handler.update)
			r.Delete("/{id}", handler.delete)
		})
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	AdminCode   string `json:"admin_code"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateMeRequest struct {
	PhoneNumber *string `json:"phone_number"`
}

type updateRequest struct {
	PhoneNumber *string `json:"phone_number"`
	Role        *string `json:"role"`
}

func adminRoles() []string {
	return slice.Map(sec.AdminRoles, func(role sec.AdminRole) string { return string(role) })
}

/*
POST /api/v1/admin/auth/register

Response:
  - 201: Admin
  - 400: VALIDATION_ERROR or CONFLICT
  - 403: FORBIDDEN on a wrong admin_code
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
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldAdminCode, input.AdminCode)
	if input.PhoneNumber != "" {
		validator.Phone(FieldPhoneNumber, input.PhoneNumber)
	}
	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role, adminRoles()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.adminService.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
		Role:        sec.AdminRole(input.Role),
		AdminCode:   input.AdminCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, admin)
}

// POST /api/v1/admin/auth/login
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

	result, err := handler.adminService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// GET /api/v1/admin/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.adminService.Me(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, admin)
}

// PATCH /api/v1/admin/me
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.PhoneNumber != nil {
		validator := &validate.Validator{}
		if err := validator.Phone(FieldPhoneNumber, *input.PhoneNumber).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	admin, err := handler.adminService.UpdateMe(request.Context(), principal.ID, input.PhoneNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, admin)
}

// GET /api/v1/admin/admins
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	admins, meta, err := handler.adminService.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, admins, meta)
}

// PUT /api/v1/admin/admins/{id}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.PhoneNumber != nil {
		validator.Phone(FieldPhoneNumber, *input.PhoneNumber)
	}
	if input.Role != nil {
		validator.OneOf(FieldRole, *input.Role, adminRoles()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{PhoneNumber: input.PhoneNumber}
	if input.Role != nil {
		role := sec.AdminRole(*input.Role)
		update.Role = &role
	}

	admin, err := handler.adminService.Update(request.Context(), principal, id, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, admin)
}

// DELETE /api/v1/admin/admins/{id}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.Delete(request.Context(), principal, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
