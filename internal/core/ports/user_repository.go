package ports

import (
	"context"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Lookups return
// (nil, nil) when no record matches.
type UserRepository interface {
	// Create inserts user and returns it with the assigned ID. A duplicate
	// email surfaces as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindAll returns every user in storage order with the credential projected out.
	FindAll(ctx context.Context) ([]domain.User, error)
	// SetBlocked flags the user as blocked and returns the updated record.
	SetBlocked(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns the full record, credential included.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
