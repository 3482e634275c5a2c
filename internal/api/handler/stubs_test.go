package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.UserView, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.UserView, error) {
	return s.loginFn(ctx, email, password)
}

type stubUserService struct {
	ports.UserService
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.UserView, error)
	listFn   func(ctx context.Context) ([]domain.UserView, error)
	blockFn  func(ctx context.Context, id string) (*domain.UserView, error)
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.UserView, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]domain.UserView, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) BlockUser(ctx context.Context, id string) (*domain.UserView, error) {
	return s.blockFn(ctx, id)
}

type stubClientService struct {
	createFn func(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error)
	listFn   func(ctx context.Context, f domain.Filter) ([]domain.Client, error)
	updateFn func(ctx context.Context, id string, p ports.ClientPatch) (*domain.Client, error)
	deleteFn func(ctx context.Context, id string) (*domain.Client, error)
}

func (s *stubClientService) CreateClient(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, in)
}

func (s *stubClientService) GetAllClients(ctx context.Context, f domain.Filter) ([]domain.Client, error) {
	return s.listFn(ctx, f)
}

func (s *stubClientService) UpdateClientByID(ctx context.Context, id string, p ports.ClientPatch) (*domain.Client, error) {
	return s.updateFn(ctx, id, p)
}

func (s *stubClientService) DeleteClientByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.deleteFn(ctx, id)
}

type stubProjectService struct {
	createFn func(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error)
	listFn   func(ctx context.Context, f domain.Filter) ([]domain.Project, error)
	updateFn func(ctx context.Context, id string, p ports.ProjectPatch) (*domain.Project, error)
	deleteFn func(ctx context.Context, id string) (*domain.DeleteResult, error)
}

func (s *stubProjectService) AddProjectToClient(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, in)
}

func (s *stubProjectService) GetAllProjects(ctx context.Context, f domain.Filter) ([]domain.Project, error) {
	return s.listFn(ctx, f)
}

func (s *stubProjectService) UpdateProjectByID(ctx context.Context, id string, p ports.ProjectPatch) (*domain.Project, error) {
	return s.updateFn(ctx, id, p)
}

func (s *stubProjectService) DeleteProjectByID(ctx context.Context, id string) (*domain.DeleteResult, error) {
	return s.deleteFn(ctx, id)
}

// newContext builds an echo context with the validator installed and,
// when email is set, the claims the Auth middleware would inject.
func newContext(method, target string, body io.Reader, email string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set(CtxEmail, email)
		c.Set(CtxRole, domain.RoleUser)
	}
	return c, rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	return env
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
