package ports

import (
	"context"
	"time"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// CreateProjectInput carries the fields for a new project. Budget is a pointer
// so that an explicit zero is accepted while a missing budget is rejected.
type CreateProjectInput struct {
	Title       string               `json:"title"     validate:"required"`
	UserEmail   string               `json:"userEmail" validate:"required,email"`
	Budget      *float64             `json:"budget"    validate:"required"`
	Deadline    time.Time            `json:"deadline"  validate:"required"`
	Status      domain.ProjectStatus `json:"status"    validate:"required,oneof=Ongoing Completed Pending"`
	ClientID    string               `json:"clientId"`
	Name        string               `json:"name"`
	Description string               `json:"description"`

	// IdempotencyKey, when set, makes a replayed create return the first result.
	IdempotencyKey string `json:"-"`
}

func (in CreateProjectInput) Validate() error {
	return domain.ValidateStruct(in)
}

// ProjectPatch is a partial update; nil fields are left untouched. An empty
// ClientID removes the client reference. ClientID existence is not re-checked.
type ProjectPatch struct {
	Title       *string               `json:"title"     validate:"omitnil,min=1"`
	UserEmail   *string               `json:"userEmail" validate:"omitnil,email"`
	Budget      *float64              `json:"budget"`
	Deadline    *time.Time            `json:"deadline"`
	Status      *domain.ProjectStatus `json:"status"    validate:"omitnil,oneof=Ongoing Completed Pending"`
	ClientID    *string               `json:"clientId"`
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
}

func (p ProjectPatch) Validate() error {
	return domain.ValidateStruct(p)
}

// IsEmpty reports whether the patch changes nothing.
func (p ProjectPatch) IsEmpty() bool {
	return p.Title == nil && p.UserEmail == nil && p.Budget == nil && p.Deadline == nil &&
		p.Status == nil && p.ClientID == nil && p.Name == nil && p.Description == nil
}

// ProjectService binds projects to existing clients and manages them.
type ProjectService interface {
	// AddProjectToClient fails with NOT_FOUND, writing nothing, when ClientID
	// references no existing client.
	AddProjectToClient(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	GetAllProjects(ctx context.Context, filter domain.Filter) ([]domain.Project, error)
	UpdateProjectByID(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	DeleteProjectByID(ctx context.Context, id string) (*domain.DeleteResult, error)
}
