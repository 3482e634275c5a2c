package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// clientFilterFields are the keys GetAllClients accepts.
var clientFilterFields = map[string]struct{}{
	"id": {}, "name": {}, "email": {}, "userEmail": {}, "phone": {}, "company": {}, "notes": {},
}

// ClientService implements ports.ClientService.
type ClientService struct {
	repo     ports.ClientRepository
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, activity ports.ActivityPublisher, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, activity: publisherOrNop(activity), logger: logger}
}

func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Client{
		Name:      input.Name,
		Email:     input.Email,
		UserEmail: input.UserEmail,
		Phone:     input.Phone,
		Company:   input.Company,
		Notes:     input.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().Str("client_id", created.ID).Str("user_email", created.UserEmail).Msg("client created")
	publish(s.activity, domain.EntityClient, domain.ActionCreated, created.ID, created.UserEmail)
	return created, nil
}

func (s *ClientService) GetAllClients(ctx context.Context, filter domain.Filter) ([]domain.Client, error) {
	if err := filter.CheckFields(clientFilterFields); err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, filter)
}

func (s *ClientService) UpdateClientByID(ctx context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		publish(s.activity, domain.EntityClient, domain.ActionUpdated, updated.ID, updated.UserEmail)
	}
	return updated, nil
}

// DeleteClientByID removes the client. Projects referencing it are left as they are.
func (s *ClientService) DeleteClientByID(ctx context.Context, id string) (*domain.Client, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted != nil {
		s.logger.Info().Str("client_id", deleted.ID).Msg("client deleted")
		publish(s.activity, domain.EntityClient, domain.ActionDeleted, deleted.ID, deleted.UserEmail)
	}
	return deleted, nil
}
