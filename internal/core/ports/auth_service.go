package ports

import (
	"context"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// AuthService handles registration and login for exchange members.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
