package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// UserService implements ports.UserService.
type UserService struct {
	repo     ports.UserRepository
	codec    ports.CredentialCodec
	activity ports.ActivityPublisher
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, codec ports.CredentialCodec, activity ports.ActivityPublisher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, codec: codec, activity: publisherOrNop(activity), logger: logger}
}

// CreateUser validates the payload, hashes the password and persists the
// account. The returned view carries no credential.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.UserView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.codec.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		IsBlocked:    input.IsBlocked,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	publish(s.activity, domain.EntityUser, domain.ActionCreated, created.ID, created.Email)

	return created.View(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserView, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.UserView, 0, len(users))
	for i := range users {
		views = append(views, *users[i].View())
	}
	return views, nil
}

// BlockUser flags the user as blocked. Blocking an already blocked user
// succeeds and returns the record unchanged.
func (s *UserService) BlockUser(ctx context.Context, id string) (*domain.UserView, error) {
	user, err := s.repo.SetBlocked(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user blocked")
	publish(s.activity, domain.EntityUser, domain.ActionBlocked, user.ID, user.Email)

	return user.View(), nil
}

// IsUserBlocked returns nil both for unknown emails and for active users.
func (s *UserService) IsUserBlocked(ctx context.Context, email string) (*domain.UserView, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsBlocked {
		return nil, nil
	}
	return user.View(), nil
}

func (s *UserService) IsUserExistByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) IsPasswordMatched(plain, hashed string) bool {
	return s.codec.Verify(plain, hashed)
}
