// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package otp

import (
	"context"
	"log/slog"
	"time"
)

// PurposeEmailVerification tags codes sent to confirm an email address.
const PurposeEmailVerification = "email_verification"

// Message is a code handed to a delivery channel.
type Message struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Code     string    `json:"code"`
	Purpose  string    `json:"purpose"`
	IssuedAt time.Time `json:"issued_at"`
}

// Notifier delivers an issued code to its owner.
type Notifier interface {
	Notify(context context.Context, message Message) error
}

// LogNotifier writes codes to the structured log. For local development only.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a [LogNotifier].
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements [Notifier].
func (notifier *LogNotifier) Notify(context context.Context, message Message) error {
	notifier.logger.InfoContext(context, "otp_issued",
		slog.String("email", message.Email),
		slog.String("code", message.Code),
		slog.String("purpose", message.Purpose),
	)
	return nil
}
