// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Role Transitions
//
// Roles only move forward and every step commits through
// [UserRepository.ChangeRole], which succeeds for at most one caller.

/*
UpgradeToWriter promotes a reader to writer.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: The account after promotion
  - error: CONFLICT if the account is not a reader
*/
func (service *Service) UpgradeToWriter(context context.Context, userID int64) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != sec.RoleReader {
		return nil, apperr.Conflict("Only readers can upgrade to writer role")
	}

	return service.commitRole(context, user, sec.RoleReader, sec.RoleWriter)
}

/*
UpgradeToPublisher promotes a writer with enough authored books.

Description: The book count is read before the compare-and-set. A book deleted
between the two is not noticed; the promotion still stands.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: The account after promotion
  - error: CONFLICT if not a writer or under [PublisherBookThreshold] books
*/
func (service *Service) UpgradeToPublisher(context context.Context, userID int64) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != sec.RoleWriter {
		return nil, apperr.Conflict("Only writers can upgrade to publisher role")
	}

	count, err := service.bookCounter.CountAuthoredBooks(context, userID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_count_books_failed: %w", err)
	}
	if count < PublisherBookThreshold {
		return nil, apperr.Conflict(fmt.Sprintf("You need at least %d published books to upgrade to publisher", PublisherBookThreshold))
	}

	return service.commitRole(context, user, sec.RoleWriter, sec.RolePublisher)
}

// commitRole applies the compare-and-set and reports a lost race as CONFLICT.
func (service *Service) commitRole(context context.Context, user *User, from, to sec.UserRole) (*User, error) {
	changed, err := service.userRepository.ChangeRole(context, user.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("auth_service_change_role_failed: %w", err)
	}
	if !changed {
		return nil, apperr.Conflict("Role changed concurrently, please retry")
	}

	user.Role = to
	service.logger.InfoContext(context, "user_promoted",
		slog.Int64("user_id", user.ID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	return user, nil
}
