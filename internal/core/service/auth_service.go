package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// AuthService implements login on top of the user lifecycle checks.
type AuthService struct {
	users     ports.UserService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserService, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login returns a signed token for valid credentials. Unknown emails and wrong
// passwords are indistinguishable. Blocked users are rejected only after a
// successful password check.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.UserView, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.IsUserExistByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.users.IsPasswordMatched(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return "", nil, domain.ErrUserBlocked
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user.View(), nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
