package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password, role string) (*domain.User, error) {
			if name != "Maya" || role != "faculty" {
				t.Fatalf("unexpected args: %s %s", name, role)
			}
			return &domain.User{ID: "user_1", Name: name, Email: email, Role: role, IsAvailable: true}, nil
		},
	}
	h := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"name":"Maya","email":"maya@campus.edu","password":"hunter2222","role":"faculty"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "user_1" || resp["role"] != "faculty" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatal("password must never appear in responses")
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password, role string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, zerolog.Nop())

	payloads := []string{
		`{"email":"maya@campus.edu","password":"hunter2222","role":"student"}`, // no name
		`{"name":"Maya","email":"not-an-email","password":"hunter2222","role":"student"}`,
		`{"name":"Maya","email":"maya@campus.edu","password":"short","role":"student"}`,
		`{"name":"Maya","email":"maya@campus.edu","password":"hunter2222","role":"admin"}`, // admin not allowed
		"not-json",
	}

	for i, payload := range payloads {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		err := h.Register(c)
		if err == nil {
			t.Fatalf("payload %d: expected error", i)
		}
		if code := httpCode(t, err); code != http.StatusBadRequest {
			t.Errorf("payload %d: expected 400, got %d", i, code)
		}
	}
}

func TestAuthHandler_Register_UserExistsPassthrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"name":"Maya","email":"maya@campus.edu","password":"hunter2222","role":"student"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("domain errors must pass through to the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "maya@campus.edu" || password != "hunter2222" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "user_1", Name: "Maya", Role: "faculty"}, nil
		},
	}
	h := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"email":"maya@campus.edu","password":"hunter2222"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "user_1" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_CredentialErrorPassthrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"email":"maya@campus.edu","password":"wrongwrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}
