package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// projectFilterFields are the keys GetAllProjects accepts.
var projectFilterFields = map[string]struct{}{
	"id": {}, "title": {}, "userEmail": {}, "budget": {}, "deadline": {},
	"status": {}, "clientId": {}, "name": {}, "description": {},
}

// ProjectService implements ports.ProjectService.
type ProjectService struct {
	projects ports.ProjectRepository
	clients  ports.ClientRepository
	idem     ports.IdempotencyStore
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

// NewProjectService wires the binder. idem may be nil to disable idempotent replays.
func NewProjectService(
	projects ports.ProjectRepository,
	clients ports.ClientRepository,
	idem ports.IdempotencyStore,
	activity ports.ActivityPublisher,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		clients:  clients,
		idem:     idem,
		activity: publisherOrNop(activity),
		logger:   logger,
	}
}

// AddProjectToClient creates a project after confirming the referenced client
// exists. The check is a single lookup; a miss fails with NOT_FOUND and
// nothing is written. A replayed idempotency key returns the original project.
func (s *ProjectService) AddProjectToClient(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if existing := s.replay(ctx, input.IdempotencyKey); existing != nil {
		return existing, nil
	}

	if input.ClientID != "" {
		ok, err := s.clients.Exists(ctx, input.ClientID)
		if err != nil {
			return nil, fmt.Errorf("check client: %w", err)
		}
		if !ok {
			s.logger.Info().Str("client_id", input.ClientID).Msg("project rejected: client does not exist")
			return nil, domain.ErrClientNotFound
		}
	}

	created, err := s.projects.Create(ctx, &domain.Project{
		Title:       input.Title,
		UserEmail:   input.UserEmail,
		Budget:      *input.Budget,
		Deadline:    input.Deadline.UTC(),
		Status:      input.Status,
		ClientID:    input.ClientID,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, input.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("project_id", created.ID).Str("client_id", created.ClientID).Msg("project created")
	publish(s.activity, domain.EntityProject, domain.ActionCreated, created.ID, created.UserEmail)
	return created, nil
}

// replay returns the project previously created under key, if any. Store
// failures are logged and treated as a miss.
func (s *ProjectService) replay(ctx context.Context, key string) *domain.Project {
	if key == "" || s.idem == nil {
		return nil
	}
	id, ok, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !ok {
		return nil
	}
	existing, err := s.projects.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("project_id", existing.ID).Msg("idempotent replay")
	return existing
}

func (s *ProjectService) GetAllProjects(ctx context.Context, filter domain.Filter) ([]domain.Project, error) {
	if err := filter.CheckFields(projectFilterFields); err != nil {
		return nil, err
	}
	return s.projects.Find(ctx, filter)
}

// UpdateProjectByID applies a partial update. A new ClientID in the patch is
// stored as given, without an existence check.
func (s *ProjectService) UpdateProjectByID(ctx context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.projects.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		publish(s.activity, domain.EntityProject, domain.ActionUpdated, updated.ID, updated.UserEmail)
	}
	return updated, nil
}

// DeleteProjectByID returns nil, not an error, when the project does not exist.
func (s *ProjectService) DeleteProjectByID(ctx context.Context, id string) (*domain.DeleteResult, error) {
	res, err := s.projects.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res != nil {
		s.logger.Info().Str("project_id", id).Msg("project deleted")
		publish(s.activity, domain.EntityProject, domain.ActionDeleted, id, "")
	}
	return res, nil
}
