package ports

import (
	"context"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// AuthService exchanges credentials for a bearer token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.UserView, error)
}
