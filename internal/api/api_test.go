// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/admins/admin"
	"github.com/taibuivan/inkwell/internal/catalog/book"
	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/otp"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/publishers/house"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// # Health

func TestLiveness(t *testing.T) {
	liveness, _ := NewHealthHandlers(HealthDependencies{}, discard)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok","version":"`+constants.AppVersion+`"}}`, recorder.Body.String())
}

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       HealthDependencies
		wantStatus int
		wantChecks int
	}{
		{"database only", HealthDependencies{CheckDatabase: healthy}, http.StatusOK, 1},
		{"database and cache", HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, 2},
		{"cache down", HealthDependencies{CheckDatabase: healthy, CheckCache: broken}, http.StatusServiceUnavailable, 2},
		{"database down", HealthDependencies{CheckDatabase: broken}, http.StatusServiceUnavailable, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, readiness := NewHealthHandlers(tc.deps, discard)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tc.wantStatus, recorder.Code)

			var body struct {
				Data struct {
					Status string        `json:"status"`
					Checks []checkResult `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Len(t, body.Data.Checks, tc.wantChecks)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "ready", body.Data.Status)
			} else {
				assert.Equal(t, "degraded", body.Data.Status)
			}
		})
	}
}

// # Routing

type headerAuthenticator map[string]*identity.Principal

func (stub headerAuthenticator) Authenticate(_ context.Context, header string) (*identity.Principal, error) {
	if principal, ok := stub[header]; ok {
		return principal, nil
	}
	return nil, apperr.InvalidCredentials()
}

// newTestRouter mounts every handler with nil services. Only guard
// middleware runs, so any request reaching a service would panic into a 500.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	authenticator := headerAuthenticator{
		"Bearer content-admin": {
			Kind: sec.EntityAdmin, ID: 1, Role: string(sec.AdminRoleContent), IsActive: true,
			Capabilities: sec.DeriveCapabilities(sec.AdminRoleContent),
		},
		"Bearer reader": {Kind: sec.EntityUser, ID: 1, Role: string(sec.RoleReader), IsActive: true},
	}
	liveness, readiness := NewHealthHandlers(HealthDependencies{}, discard)

	cfg := &config.Config{Environment: "development", ServerPort: "0"}
	return NewRouter(context.Background(), cfg, discard, Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(nil, authenticator),
		OTP:       otp.NewHandler(nil, nil),
		Publisher: house.NewHandler(nil, authenticator),
		Admin:     admin.NewHandler(nil, authenticator),
		Book:      book.NewHandler(nil, authenticator),
	})
}

func TestRouter_Mounts(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"user me anonymous", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized},
		{"user me as admin", http.MethodGet, "/api/v1/auth/me", "Bearer content-admin", http.StatusForbidden},
		{"publisher me as user", http.MethodGet, "/api/v1/publishers/auth/me", "Bearer reader", http.StatusForbidden},
		{"admin me as user", http.MethodGet, "/api/v1/admin/me", "Bearer reader", http.StatusForbidden},
		{"admin list needs super admin", http.MethodGet, "/api/v1/admin/admins", "Bearer content-admin", http.StatusForbidden},
		// A content admin lacks manage_publishers; reaching the capability
		// guard proves the subtree beat the /admin mount.
		{"publisher moderation", http.MethodGet, "/api/v1/admin/publishers", "Bearer content-admin", http.StatusForbidden},
		{"user moderation", http.MethodPut, "/api/v1/admin/users/7/status", "Bearer content-admin", http.StatusForbidden},
		{"book create anonymous", http.MethodPost, "/api/v1/books", "", http.StatusUnauthorized},
		{"unknown", http.MethodGet, "/api/v1/comics", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.header != "" {
				request.Header.Set("Authorization", tc.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)
			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}
