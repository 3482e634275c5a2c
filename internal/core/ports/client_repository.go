package ports

import (
	"context"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// ClientRepository defines persistence for clients. Lookups by ID return
// (nil, nil) when no record matches, including malformed identifiers.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Exists(ctx context.Context, id string) (bool, error)
	Find(ctx context.Context, filter domain.Filter) ([]domain.Client, error)
	UpdateByID(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error)
	DeleteByID(ctx context.Context, id string) (*domain.Client, error)
}
