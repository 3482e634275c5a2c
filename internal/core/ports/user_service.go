package ports

import (
	"context"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// CreateUserInput carries a registration request. Password is plaintext and
// never leaves the service.
type CreateUserInput struct {
	Name      string `json:"name"     validate:"required"`
	Email     string `json:"email"    validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role"     validate:"required,oneof=admin user"`
	IsBlocked bool   `json:"isBlocked"`
}

// Validate returns every field violation at once.
func (in CreateUserInput) Validate() error {
	return domain.ValidateStruct(in)
}

// UserService owns the user lifecycle: creation, blocking and credential checks.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.UserView, error)
	ListUsers(ctx context.Context) ([]domain.UserView, error)
	// BlockUser is idempotent and returns nil when no user has that ID.
	BlockUser(ctx context.Context, id string) (*domain.UserView, error)
	// IsUserBlocked returns the user only when it exists and is blocked.
	IsUserBlocked(ctx context.Context, email string) (*domain.UserView, error)
	// IsUserExistByEmail returns the full record, hash included, or nil.
	IsUserExistByEmail(ctx context.Context, email string) (*domain.User, error)
	IsPasswordMatched(plain, hashed string) bool
}
