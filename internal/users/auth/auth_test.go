// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/identity"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Fixtures

type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{rows: map[int64]*User{}}
}

func (store *memoryUsers) FindByID(_ context.Context, id int64) (*User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if user, ok := store.rows[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound(resourceUser)
}

func (store *memoryUsers) FindByUsername(_ context.Context, username string) (*User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, user := range store.rows {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound(resourceUser)
}

func (store *memoryUsers) Create(_ context.Context, user *User) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, existing := range store.rows {
		if existing.Username == user.Username {
			return apperr.Conflict("Username already registered")
		}
		if existing.PhoneNumber == user.PhoneNumber {
			return apperr.Conflict("Phone number already registered")
		}
	}
	store.nextID++
	user.ID = store.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	store.rows[user.ID] = &clone
	return nil
}

func (store *memoryUsers) UpdateProfile(_ context.Context, user *User) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	row, ok := store.rows[user.ID]
	if !ok {
		return apperr.NotFound(resourceUser)
	}
	row.FullName, row.Bio, row.SocialLinks = user.FullName, user.Bio, user.SocialLinks
	return nil
}

func (store *memoryUsers) ChangeRole(_ context.Context, id int64, from, to sec.UserRole) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	row, ok := store.rows[id]
	if !ok || row.Role != from {
		return false, nil
	}
	row.Role = to
	return true, nil
}

func (store *memoryUsers) SetActive(_ context.Context, id int64, active bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	row, ok := store.rows[id]
	if !ok {
		return apperr.NotFound(resourceUser)
	}
	row.IsActive = active
	return nil
}

func (store *memoryUsers) MarkEmailVerified(_ context.Context, email string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, row := range store.rows {
		if row.Email != nil && *row.Email == email {
			row.IsVerified = true
		}
	}
	return nil
}

type fixedBooks map[int64]int

func (books fixedBooks) CountAuthoredBooks(_ context.Context, userID int64) (int, error) {
	return books[userID], nil
}

type failingBooks struct{}

func (failingBooks) CountAuthoredBooks(context.Context, int64) (int, error) {
	return 0, errors.New("connection reset")
}

const testSecret = "0123456789abcdef0123456789abcdef"

var cheapArgon2 = sec.Argon2Params{Memory: 8 * 1024, Iterations: 1, Threads: 1, SaltLength: 16, KeyLength: 32}

func newTestService(t *testing.T, books BookCounter) (*Service, *memoryUsers, *sec.TokenService) {
	t.Helper()
	tokens, err := sec.NewTokenService(testSecret, "inkwell.test")
	require.NoError(t, err)

	users := newMemoryUsers()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, books, sec.NewHasher(cheapArgon2), tokens, time.Hour, logger), users, tokens
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

func register(t *testing.T, service *Service, username string, role sec.UserRole) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username:    username,
		PhoneNumber: "+1555" + username,
		Password:    "pw12345678",
		Role:        role,
	})
	require.NoError(t, err)
	return user
}

// # Service

func TestService_Register(t *testing.T) {
	service, _, _ := newTestService(t, fixedBooks{})
	ctx := context.Background()

	user := register(t, service, "alice", "")
	assert.Equal(t, sec.RoleReader, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "pw12345678", user.PasswordHash)

	_, err := service.Register(ctx, RegisterInput{Username: "alice", PhoneNumber: "+15550000", Password: "pw12345678"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.Register(ctx, RegisterInput{Username: "mallory", PhoneNumber: "+15550001", Password: "pw12345678", Role: sec.RolePublisher})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "publisher is reachable only by promotion")
}

func TestService_Login(t *testing.T) {
	service, users, tokens := newTestService(t, fixedBooks{})
	ctx := context.Background()
	alice := register(t, service, "alice", sec.RoleReader)

	t.Run("success", func(t *testing.T) {
		result, err := service.Login(ctx, LoginInput{Username: "alice", Password: "pw12345678"})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleReader, result.Role)
		assert.Equal(t, alice.ID, result.UserID)
		assert.Equal(t, TokenType, result.TokenType)

		claims, err := tokens.Verify(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.Equal(t, sec.EntityUser, claims.EntityType)
		assert.Equal(t, "reader", claims.Role)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, wrongPassword := service.Login(ctx, LoginInput{Username: "alice", Password: "nope-nope"})
		_, unknown := service.Login(ctx, LoginInput{Username: "bob", Password: "pw12345678"})

		assert.True(t, apperr.HasCode(wrongPassword, apperr.CodeInvalidCredentials))
		assert.Equal(t, wrongPassword.Error(), unknown.Error())
	})

	t.Run("role-specific login", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Username: "alice", Password: "pw12345678", RequiredRole: sec.RoleWriter})
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	})

	t.Run("inactive", func(t *testing.T) {
		require.NoError(t, users.SetActive(ctx, alice.ID, false))
		_, err := service.Login(ctx, LoginInput{Username: "alice", Password: "pw12345678"})
		assert.True(t, apperr.HasCode(err, apperr.CodeInactiveAccount))
	})
}

func TestService_LoginUnknownUserPaysForVerification(t *testing.T) {
	tokens, err := sec.NewTokenService(testSecret, "inkwell.test")
	require.NoError(t, err)
	hasher := &countingHasher{Hasher: sec.NewHasher(cheapArgon2)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(newMemoryUsers(), fixedBooks{}, hasher, tokens, time.Hour, logger)
	ctx := context.Background()
	register(t, service, "alice", sec.RoleReader)

	_, err = service.Login(ctx, LoginInput{Username: "alice", Password: "nope-nope"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	assert.Equal(t, 1, hasher.verifies)

	_, err = service.Login(ctx, LoginInput{Username: "bob", Password: "nope-nope"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	assert.Equal(t, 2, hasher.verifies)
}

func TestService_UpgradeToWriter(t *testing.T) {
	service, _, _ := newTestService(t, fixedBooks{})
	ctx := context.Background()
	alice := register(t, service, "alice", sec.RoleReader)

	user, err := service.UpgradeToWriter(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleWriter, user.Role)

	_, err = service.UpgradeToWriter(ctx, alice.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestService_UpgradeToPublisher(t *testing.T) {
	tests := []struct {
		name     string
		role     sec.UserRole
		books    int
		wantCode string
		wantRole sec.UserRole
	}{
		{"writer with three books", sec.RoleWriter, 3, "", sec.RolePublisher},
		{"writer with two books", sec.RoleWriter, 2, apperr.CodeConflict, sec.RoleWriter},
		{"reader with many books", sec.RoleReader, 10, apperr.CodeConflict, sec.RoleReader},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			books := fixedBooks{}
			service, users, _ := newTestService(t, books)
			ctx := context.Background()
			user := register(t, service, "carol", tc.role)
			books[user.ID] = tc.books

			_, err := service.UpgradeToPublisher(ctx, user.ID)
			if tc.wantCode == "" {
				require.NoError(t, err)
			} else {
				assert.True(t, apperr.HasCode(err, tc.wantCode))
			}

			stored, err := users.FindByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantRole, stored.Role)
		})
	}
}

func TestService_UpgradeToPublisher_CounterFailureLeavesRole(t *testing.T) {
	service, users, _ := newTestService(t, failingBooks{})
	ctx := context.Background()
	user := register(t, service, "dave", sec.RoleWriter)

	_, err := service.UpgradeToPublisher(ctx, user.ID)
	require.Error(t, err)

	stored, _ := users.FindByID(ctx, user.ID)
	assert.Equal(t, sec.RoleWriter, stored.Role)
}

func TestService_ConcurrentPromotionAppliesOnce(t *testing.T) {
	books := fixedBooks{}
	service, _, _ := newTestService(t, books)
	user := register(t, service, "erin", sec.RoleWriter)
	books[user.ID] = 5

	var wg sync.WaitGroup
	results := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.UpgradeToPublisher(context.Background(), user.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	}
	assert.Equal(t, 1, successes)
}

func TestService_FindPrincipal(t *testing.T) {
	service, _, _ := newTestService(t, fixedBooks{})
	ctx := context.Background()
	alice := register(t, service, "alice", sec.RoleWriter)

	principal, err := service.FindPrincipal(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, sec.EntityUser, principal.Kind)
	assert.Equal(t, alice.ID, principal.ID)
	assert.Equal(t, "writer", principal.Role)

	_, err = service.FindPrincipal(ctx, "ghost")
	assert.ErrorIs(t, err, identity.ErrPrincipalNotFound)
}

func TestService_MarkEmailVerified(t *testing.T) {
	service, users, _ := newTestService(t, fixedBooks{})
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Username:    "frank",
		PhoneNumber: "+15559999",
		Email:       "Frank@Inkwell.app",
		Password:    "pw12345678",
	})
	require.NoError(t, err)

	require.NoError(t, service.MarkEmailVerified(ctx, "FRANK@inkwell.app"))
	stored, _ := users.FindByID(ctx, user.ID)
	assert.True(t, stored.IsVerified)
}

// # HTTP

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Code  string          `json:"code"`
	Error string          `json:"error"`
}

func do(t *testing.T, handler http.Handler, method, path, token, body string) (int, envelope) {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var payload envelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &payload)
	return recorder.Code, payload
}

func newTestRouter(t *testing.T, books BookCounter) http.Handler {
	t.Helper()
	service, _, tokens := newTestService(t, books)
	authenticator := identity.NewAuthenticator(tokens, identity.Directory{sec.EntityUser: service})
	return NewHandler(service, authenticator).Routes()
}

func TestHandler_RegisterLoginUpgradeMe(t *testing.T) {
	router := newTestRouter(t, fixedBooks{})

	status, _ := do(t, router, http.MethodPost, "/register", "",
		`{"username":"alice","phone_number":"+15550100","password":"pw12345678"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, router, http.MethodPost, "/login", "", `{"username":"alice","password":"pw12345678"}`)
	require.Equal(t, http.StatusOK, status)

	var login LoginResult
	require.NoError(t, json.Unmarshal(body.Data, &login))
	assert.Equal(t, sec.RoleReader, login.Role)

	status, _ = do(t, router, http.MethodPost, "/upgrade/writer", login.AccessToken, "")
	require.Equal(t, http.StatusOK, status)

	// The old token still says reader; the role comes from the store.
	status, body = do(t, router, http.MethodGet, "/me", login.AccessToken, "")
	require.Equal(t, http.StatusOK, status)

	var me User
	require.NoError(t, json.Unmarshal(body.Data, &me))
	assert.Equal(t, sec.RoleWriter, me.Role)
	assert.Equal(t, "alice", me.Username)
}

func TestHandler_Errors(t *testing.T) {
	router := newTestRouter(t, fixedBooks{})
	do(t, router, http.MethodPost, "/register", "", `{"username":"alice","phone_number":"+15550100","password":"pw12345678"}`)
	_, body := do(t, router, http.MethodPost, "/login", "", `{"username":"alice","password":"pw12345678"}`)
	var login LoginResult
	require.NoError(t, json.Unmarshal(body.Data, &login))

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"me without token", http.MethodGet, "/me", "", "", http.StatusUnauthorized, apperr.CodeMalformedRequest},
		{"me with garbage token", http.MethodGet, "/me", "garbage", "", http.StatusUnauthorized, apperr.CodeInvalidCredentials},
		{"short password", http.MethodPost, "/register", "", `{"username":"bob","phone_number":"+15550101","password":"short"}`, http.StatusBadRequest, apperr.CodeValidation},
		{"duplicate username", http.MethodPost, "/register", "", `{"username":"alice","phone_number":"+15550102","password":"pw12345678"}`, http.StatusBadRequest, apperr.CodeConflict},
		{"bad credentials", http.MethodPost, "/login", "", `{"username":"alice","password":"wrong-password"}`, http.StatusUnauthorized, apperr.CodeInvalidCredentials},
		{"login as writer", http.MethodPost, "/login/writer", "", `{"username":"alice","password":"pw12345678"}`, http.StatusForbidden, apperr.CodeForbidden},
		{"publisher upgrade as reader", http.MethodPost, "/upgrade/publisher", login.AccessToken, "", http.StatusBadRequest, apperr.CodeConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, router, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}

func TestHandler_UpdateProfile(t *testing.T) {
	router := newTestRouter(t, fixedBooks{})
	do(t, router, http.MethodPost, "/register", "", `{"username":"alice","phone_number":"+15550100","password":"pw12345678"}`)
	_, body := do(t, router, http.MethodPost, "/login", "", `{"username":"alice","password":"pw12345678"}`)
	var login LoginResult
	require.NoError(t, json.Unmarshal(body.Data, &login))

	status, body := do(t, router, http.MethodPatch, "/me", login.AccessToken, `{"bio":"Writes at night","social_links":{"site":"https://alice.example"}}`)
	require.Equal(t, http.StatusOK, status)

	var me User
	require.NoError(t, json.Unmarshal(body.Data, &me))
	require.NotNil(t, me.Bio)
	assert.Equal(t, "Writes at night", *me.Bio)
	assert.Equal(t, "https://alice.example", me.SocialLinks["site"])
}
