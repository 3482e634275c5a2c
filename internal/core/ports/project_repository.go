package ports

import (
	"context"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// ProjectRepository defines persistence for projects. Lookups by ID return
// (nil, nil) when no record matches.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Find(ctx context.Context, filter domain.Filter) ([]domain.Project, error)
	UpdateByID(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	// DeleteByID returns nil when nothing was removed.
	DeleteByID(ctx context.Context, id string) (*domain.DeleteResult, error)
}
