// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package otp

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/pkg/loginkey"
	"github.com/taibuivan/inkwell/pkg/uuidv7"
)

// EmailVerifier is told about every email whose code verified.
type EmailVerifier interface {
	MarkEmailVerified(context context.Context, email string) error
}

// Service implements the send and verify use cases.
type Service struct {
	ledger     Ledger
	notifier   Notifier
	verifier   EmailVerifier
	logger     *slog.Logger
	returnCode bool
	now        func() time.Time
}

// NewService constructs a [Service]. verifier may be nil. When returnCode is
// set, RequestCode hands the code back to the caller; never enable it in
// production.
func NewService(ledger Ledger, notifier Notifier, verifier EmailVerifier, logger *slog.Logger, returnCode bool) *Service {
	return &Service{
		ledger:     ledger,
		notifier:   notifier,
		verifier:   verifier,
		logger:     logger,
		returnCode: returnCode,
		now:        time.Now,
	}
}

/*
RequestCode issues a code for email and hands it to the notifier.

Description: A delivery failure is logged and swallowed. The code is already
live in the ledger, and the caller may simply ask again.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: The code when debug return is enabled, otherwise ""
  - error: Ledger failures
*/
func (service *Service) RequestCode(context context.Context, email string) (string, error) {
	email = loginkey.Email(email)

	code, err := service.ledger.Issue(context, email)
	if err != nil {
		return "", apperr.Internal(err)
	}

	message := Message{
		ID:       uuidv7.New(),
		Email:    email,
		Code:     code,
		Purpose:  PurposeEmailVerification,
		IssuedAt: service.now().UTC(),
	}
	if err := service.notifier.Notify(context, message); err != nil {
		service.logger.WarnContext(context, "otp_delivery_failed",
			slog.String("email", email),
			slog.String("message_id", message.ID),
			slog.String("error", err.Error()),
		)
	}

	if service.returnCode {
		return code, nil
	}
	return "", nil
}

/*
VerifyCode consumes the code for email.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - error: INVALID_OTP on mismatch, expiry or reuse
*/
func (service *Service) VerifyCode(context context.Context, email, code string) error {
	email = loginkey.Email(email)

	ok, err := service.ledger.Verify(context, email, code)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.InvalidOTP()
	}

	// The code is spent either way; a verifier failure is not the caller's fault.
	if service.verifier != nil {
		if err := service.verifier.MarkEmailVerified(context, email); err != nil {
			service.logger.ErrorContext(context, "otp_mark_verified_failed",
				slog.String("email", email),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
