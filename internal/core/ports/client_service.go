package ports

import (
	"context"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// CreateClientInput carries the fields for a new client.
type CreateClientInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"     validate:"required,email"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	Phone     string `json:"phone"     validate:"required"`
	Company   string `json:"company"`
	Notes     string `json:"notes"`
}

func (in CreateClientInput) Validate() error {
	return domain.ValidateStruct(in)
}

// ClientPatch is a partial update; nil fields are left untouched.
type ClientPatch struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"     validate:"omitnil,email"`
	UserEmail *string `json:"userEmail" validate:"omitnil,email"`
	Phone     *string `json:"phone"     validate:"omitnil,min=1"`
	Company   *string `json:"company"`
	Notes     *string `json:"notes"`
}

func (p ClientPatch) Validate() error {
	return domain.ValidateStruct(p)
}

// IsEmpty reports whether the patch changes nothing.
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.UserEmail == nil &&
		p.Phone == nil && p.Company == nil && p.Notes == nil
}

// ClientService is the client registry.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetAllClients(ctx context.Context, filter domain.Filter) ([]domain.Client, error)
	UpdateClientByID(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error)
	DeleteClientByID(ctx context.Context, id string) (*domain.Client, error)
}
