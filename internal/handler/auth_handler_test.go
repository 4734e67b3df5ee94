package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/pkg/auth"
)

func fakeSession(userID string) *model.AuthSession {
	return &model.AuthSession{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        &model.User{ID: userID, Email: "a@b.com"},
	}
}

func TestAuthHandler_SignUp_Created(t *testing.T) {
	var captured model.Credentials
	mock := &mockAuthService{
		signUpFunc: func(_ context.Context, creds model.Credentials) (*model.AuthSession, error) {
			captured = creds
			return fakeSession("u1"), nil
		},
	}
	h := NewAuthHandler(mock, false)

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":"a@b.com","password":"secret1"}`)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Email != "a@b.com" || captured.Password != "secret1" {
		t.Errorf("unexpected credentials: %+v", captured)
	}
	var body model.AuthSession
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.AccessToken != "tok" || body.User.ID != "u1" {
		t.Errorf("unexpected body: %+v", body)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("password hash must not be serialized")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != auth.SessionCookieName() || cookies[0].Value != "tok" {
		t.Errorf("expected session cookie, got %v", cookies)
	}
}

func TestAuthHandler_SignUp_EmailTaken(t *testing.T) {
	mock := &mockAuthService{
		signUpFunc: func(_ context.Context, _ model.Credentials) (*model.AuthSession, error) {
			return nil, service.ErrEmailTaken
		},
	}
	h := NewAuthHandler(mock, false)
	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":"a@b.com","password":"secret1"}`)))

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{
		signInFunc: func(_ context.Context, _ model.Credentials) (*model.AuthSession, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(mock, false)
	rec := httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(`{"email":"a@b.com","password":"nope"}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "invalid_credentials" || resp.Message == "" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_SignOut_RevokesBearerToken(t *testing.T) {
	var revoked string
	mock := &mockAuthService{
		signOutFunc: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	h := NewAuthHandler(mock, false)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	h.SignOut(rec, asUser(req, "u1"))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if revoked != "tok-123" {
		t.Errorf("expected tok-123 revoked, got %q", revoked)
	}
}

func TestAuthHandler_SignOut_ScopeAll(t *testing.T) {
	var single bool
	var revokedFor string
	mock := &mockAuthService{
		signOutFunc: func(_ context.Context, _ string) error {
			single = true
			return nil
		},
		signOutAllFunc: func(_ context.Context, userID string) error {
			revokedFor = userID
			return nil
		},
	}
	h := NewAuthHandler(mock, false)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout?scope=all", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	h.SignOut(rec, asUser(req, "u1"))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if revokedFor != "u1" {
		t.Errorf("expected every session of u1 revoked, got %q", revokedFor)
	}
	if single {
		t.Error("single-session sign out should not run for scope=all")
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "Max-Age=0") {
		t.Errorf("expected session cookie cleared, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestAuthHandler_SignOut_UnknownScope(t *testing.T) {
	called := false
	mock := &mockAuthService{
		signOutFunc:    func(context.Context, string) error { called = true; return nil },
		signOutAllFunc: func(context.Context, string) error { called = true; return nil },
	}
	h := NewAuthHandler(mock, false)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout?scope=others", nil)
	rec := httptest.NewRecorder()
	h.SignOut(rec, asUser(req, "u1"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_scope") {
		t.Errorf("expected invalid_scope, got %s", rec.Body.String())
	}
	if called {
		t.Error("no session should be revoked for an unknown scope")
	}
}

func TestAuthHandler_SignOut_ScopeAllError(t *testing.T) {
	mock := &mockAuthService{
		signOutAllFunc: func(context.Context, string) error { return errors.New("db down") },
	}
	h := NewAuthHandler(mock, false)
	rec := httptest.NewRecorder()
	h.SignOut(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/auth/signout?scope=all", nil), "u1"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, false)
	rec := httptest.NewRecorder()
	h.Session(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"u1"`) {
		t.Errorf("expected user u1, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Session_InternalError(t *testing.T) {
	mock := &mockAuthService{
		currentUserFunc: func(_ context.Context, _ string) (*model.User, error) {
			return nil, errors.New("db down")
		},
	}
	h := NewAuthHandler(mock, false)
	rec := httptest.NewRecorder()
	h.Session(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), "u1"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "db down") {
		t.Error("internal error details must not leak")
	}
}
