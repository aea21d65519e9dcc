package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", 0)

	user, err := svc.Register(context.Background(), "Maya", "maya@campus.edu", "hunter22", domain.RoleFaculty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected an assigned id")
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if !user.IsAvailable {
		t.Error("new users start available")
	}
	if user.SkillsOffered == nil || user.SkillsSeeking == nil {
		t.Error("skill sets must be initialised empty, not nil")
	}
	if user.CurrentStatus != domain.FacultyFree {
		t.Errorf("faculty starts free, got %q", user.CurrentStatus)
	}
}

func TestAuthService_Register_StudentHasNoFacultyStatus(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", 0)

	user, err := svc.Register(context.Background(), "Leo", "leo@campus.edu", "hunter22", domain.RoleStudent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.CurrentStatus != "" {
		t.Errorf("student must not carry a faculty status, got %q", user.CurrentStatus)
	}
}

func TestAuthService_Register_RejectsAdminRole(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", 0)

	_, err := svc.Register(context.Background(), "Eve", "eve@campus.edu", "hunter22", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("admin self-registration must fail, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", 0)

	if _, err := svc.Register(context.Background(), "Maya", "maya@campus.edu", "hunter22", domain.RoleStudent); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "Other", "maya@campus.edu", "hunter33", domain.RoleStudent)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Roundtrip(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", 0)

	registered, err := svc.Register(context.Background(), "Maya", "maya@campus.edu", "hunter22", domain.RoleFaculty)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "maya@campus.edu", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != registered.ID {
		t.Errorf("user_id claim: expected %s, got %v", registered.ID, claims["user_id"])
	}
	if claims["role"] != domain.RoleFaculty {
		t.Errorf("role claim: expected faculty, got %v", claims["role"])
	}
	if claims["email"] != "maya@campus.edu" {
		t.Errorf("email claim wrong: %v", claims["email"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", 0)

	if _, err := svc.Register(context.Background(), "Maya", "maya@campus.edu", "hunter22", domain.RoleStudent); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "maya@campus.edu", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, "secret", 0)

	_, _, err := svc.Login(context.Background(), "ghost@campus.edu", "whatever")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
