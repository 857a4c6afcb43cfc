// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package house

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// # Fixtures

type memoryHouses struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*House
}

func newMemoryHouses() *memoryHouses {
	return &memoryHouses{rows: map[int64]*House{}}
}

func (store *memoryHouses) FindByID(_ context.Context, id int64) (*House, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if row, ok := store.rows[id]; ok {
		clone := *row
		return &clone, nil
	}
	return nil, apperr.NotFound(resourceHouse)
}

func (store *memoryHouses) FindByEmail(_ context.Context, email string) (*House, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, row := range store.rows {
		if row.Email == email {
			clone := *row
			return &clone, nil
		}
	}
	return nil, apperr.NotFound(resourceHouse)
}

func (store *memoryHouses) Create(_ context.Context, house *House) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, row := range store.rows {
		if row.Email == house.Email {
			return apperr.Conflict("Email already registered")
		}
		if row.Name == house.Name {
			return apperr.Conflict("Publisher house name already exists")
		}
	}
	store.nextID++
	house.ID = store.nextID
	house.CreatedAt = time.Now()
	house.UpdatedAt = house.CreatedAt
	clone := *house
	store.rows[house.ID] = &clone
	return nil
}

func (store *memoryHouses) UpdateProfile(_ context.Context, house *House) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.rows[house.ID]; !ok {
		return apperr.NotFound(resourceHouse)
	}
	clone := *house
	store.rows[house.ID] = &clone
	return nil
}

func (store *memoryHouses) List(_ context.Context, limit, offset int) ([]*House, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	all := make([]*House, 0, len(store.rows))
	for _, row := range store.rows {
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (store *memoryHouses) UpdateStatus(_ context.Context, id int64, status Status) (*House, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	row, ok := store.rows[id]
	if !ok {
		return nil, apperr.NotFound(resourceHouse)
	}
	if status.IsActive != nil {
		row.IsActive = *status.IsActive
	}
	if status.IsVerified != nil {
		row.IsVerified = *status.IsVerified
	}
	clone := *row
	return &clone, nil
}

// headerAuthenticator maps raw Authorization headers to principals.
type headerAuthenticator map[string]*identity.Principal

func (stub headerAuthenticator) Authenticate(_ context.Context, header string) (*identity.Principal, error) {
	if principal, ok := stub[header]; ok {
		return principal, nil
	}
	return nil, apperr.InvalidCredentials()
}

const testSecret = "0123456789abcdef0123456789abcdef"

var cheapArgon2 = sec.Argon2Params{Memory: 8 * 1024, Iterations: 1, Threads: 1, SaltLength: 16, KeyLength: 32}

func newTestService(t *testing.T) (*Service, *sec.TokenService) {
	t.Helper()
	tokens, err := sec.NewTokenService(testSecret, "inkwell.test")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(newMemoryHouses(), sec.NewHasher(cheapArgon2), tokens, time.Hour, logger), tokens
}

// countingHasher records how many verifications reach the real hasher.
type countingHasher struct {
	*sec.Hasher
	verifies int
}

func (hasher *countingHasher) Verify(password, encoded string) bool {
	hasher.verifies++
	return hasher.Hasher.Verify(password, encoded)
}

func registerHouse(t *testing.T, service *Service, name, email string) *House {
	t.Helper()
	house, err := service.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "pw12345678"})
	require.NoError(t, err)
	return house
}

// # Service

func TestService_RegisterAndLogin(t *testing.T) {
	service, tokens := newTestService(t)
	ctx := context.Background()

	house := registerHouse(t, service, "Quill Press", "Desk@Quill.example")
	assert.Equal(t, "desk@quill.example", house.Email)
	assert.True(t, house.IsActive)
	assert.False(t, house.IsVerified)

	_, err := service.Register(ctx, RegisterInput{Name: "Other", Email: "desk@quill.example", Password: "pw12345678"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	result, err := service.Login(ctx, "DESK@quill.example", "pw12345678")
	require.NoError(t, err)
	assert.Equal(t, house.ID, result.PublisherHouseID)

	claims, err := tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sec.EntityPublisher, claims.EntityType)
	assert.Equal(t, sec.RolePublisherHouse, claims.Role)
	assert.NotEqual(t, string(sec.RolePublisher), claims.Role)

	_, err = service.Login(ctx, "desk@quill.example", "wrong-password")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	_, err = service.Login(ctx, "nobody@quill.example", "pw12345678")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
}

func TestService_LoginUnknownEmailPaysForVerification(t *testing.T) {
	tokens, err := sec.NewTokenService(testSecret, "inkwell.test")
	require.NoError(t, err)
	hasher := &countingHasher{Hasher: sec.NewHasher(cheapArgon2)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(newMemoryHouses(), hasher, tokens, time.Hour, logger)
	ctx := context.Background()
	registerHouse(t, service, "Quill Press", "desk@quill.example")

	_, err = service.Login(ctx, "desk@quill.example", "wrong-password")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	assert.Equal(t, 1, hasher.verifies)

	_, err = service.Login(ctx, "nobody@quill.example", "wrong-password")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	assert.Equal(t, 2, hasher.verifies)
}

func TestService_InactiveHouse(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	house := registerHouse(t, service, "Quill Press", "desk@quill.example")

	inactive := false
	_, err := service.UpdateStatus(ctx, house.ID, Status{IsActive: &inactive})
	require.NoError(t, err)

	_, err = service.Login(ctx, "desk@quill.example", "pw12345678")
	assert.True(t, apperr.HasCode(err, apperr.CodeInactiveAccount))

	principal, err := service.FindPrincipal(ctx, "desk@quill.example")
	require.NoError(t, err)
	assert.False(t, principal.IsActive)
}

func TestService_UpdateStatusRequiresAFlag(t *testing.T) {
	service, _ := newTestService(t)
	house := registerHouse(t, service, "Quill Press", "desk@quill.example")

	_, err := service.UpdateStatus(context.Background(), house.ID, Status{})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_List(t *testing.T) {
	service, _ := newTestService(t)
	for _, name := range []string{"A", "B", "C"} {
		registerHouse(t, service, name, strings.ToLower(name)+"@press.example")
	}

	houses, meta, err := service.List(context.Background(), pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, houses, 1)
	assert.Equal(t, "C", houses[0].Name)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}

// # HTTP

func do(handler http.Handler, method, path, header, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if header != "" {
		request.Header.Set("Authorization", header)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_SelfService(t *testing.T) {
	service, tokens := newTestService(t)
	authenticator := identity.NewAuthenticator(tokens, identity.Directory{sec.EntityPublisher: service})
	router := NewHandler(service, authenticator).Routes()

	recorder := do(router, http.MethodPost, "/register", "",
		`{"name":"Quill Press","email":"desk@quill.example","password":"pw12345678","confirm_password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(router, http.MethodPost, "/register", "",
		`{"name":"Quill Press","email":"desk@quill.example","password":"pw12345678","confirm_password":"pw12345678"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = do(router, http.MethodPost, "/login", "", `{"email":"desk@quill.example","password":"pw12345678"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var login struct {
		Data LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))

	recorder = do(router, http.MethodPatch, "/me", "Bearer "+login.Data.AccessToken, `{"address":"1 Ink Street"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "1 Ink Street")
}

func TestHandler_AdminRoutes(t *testing.T) {
	service, _ := newTestService(t)
	house := registerHouse(t, service, "Quill Press", "desk@quill.example")

	authenticator := headerAuthenticator{
		"Bearer publisher-admin": {
			Kind: sec.EntityAdmin, ID: 1, Role: string(sec.AdminRolePublisher), IsActive: true,
			Capabilities: sec.DeriveCapabilities(sec.AdminRolePublisher),
		},
		"Bearer content-admin": {
			Kind: sec.EntityAdmin, ID: 2, Role: string(sec.AdminRoleContent), IsActive: true,
			Capabilities: sec.DeriveCapabilities(sec.AdminRoleContent),
		},
		"Bearer publisher-user": {
			Kind: sec.EntityUser, ID: 3, Role: string(sec.RolePublisher), IsActive: true,
		},
	}
	router := NewHandler(service, authenticator).AdminRoutes()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"capability holder", "Bearer publisher-admin", http.StatusOK},
		{"admin without capability", "Bearer content-admin", http.StatusForbidden},
		{"promoted user", "Bearer publisher-user", http.StatusForbidden},
		{"anonymous", "", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := do(router, http.MethodPut, "/1/status", tc.header, `{"is_verified":true}`)
			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}

	stored, err := service.Me(context.Background(), house.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)

	recorder := do(router, http.MethodGet, "/", "Bearer publisher-admin", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)
}
