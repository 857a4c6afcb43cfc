// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package otp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

const (
	FieldEmail = "email"
	FieldCode  = "otp"
)

// Handler exposes the OTP endpoints.
type Handler struct {
	otpService  *Service
	sendLimiter func(http.Handler) http.Handler
}

// NewHandler constructs a [Handler]. sendLimiter wraps /send only; pass nil
// to leave it unthrottled.
func NewHandler(service *Service, sendLimiter func(http.Handler) http.Handler) *Handler {
	return &Handler{otpService: service, sendLimiter: sendLimiter}
}

// Routes returns the OTP router.
//
// # Endpoints
//   - POST /send   : Issues a code for an email.
//   - POST /verify : Consumes a code.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		if handler.sendLimiter != nil {
			r.Use(handler.sendLimiter)
		}
		r.Post("/send", handler.send)
	})
	router.Post("/verify", handler.verify)

	return router
}

type sendRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

/*
POST /api/v1/otp/send

Response:
  - 200: {message, otp?}
  - 400: VALIDATION_ERROR
  - 429: RATE_LIMITED
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	var input sendRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	code, err := handler.otpService.RequestCode(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := map[string]string{constants.FieldMessage: "OTP sent"}
	if code != "" {
		body[FieldCode] = code
	}
	respond.OK(writer, body)
}

/*
POST /api/v1/otp/verify

Response:
  - 200: {message}
  - 400: INVALID_OTP or VALIDATION_ERROR
*/
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	var input verifyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldCode, input.OTP).
		OTP(FieldCode, input.OTP)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.otpService.VerifyCode(request.Context(), input.Email, input.OTP); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "OTP verified"})
}
