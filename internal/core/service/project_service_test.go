package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func budget(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func projectInput(clientID, userEmail string) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Title:       "Website Redesign",
		UserEmail:   userEmail,
		Budget:      budget(1000),
		Deadline:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      domain.ProjectPending,
		ClientID:    clientID,
		Name:        "New Project",
		Description: "Project Description",
	}
}

func seedClient(t *testing.T, repo *stubClientRepo) string {
	t.Helper()
	c, err := repo.Create(context.Background(), &domain.Client{
		Name:      "Test Client",
		Email:     "c@x.com",
		UserEmail: "u@x.com",
		Phone:     "0123456789",
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c.ID
}

func newProjectFixture(t *testing.T) (*ProjectService, *stubProjectRepo, *stubClientRepo, string) {
	t.Helper()
	projects := newStubProjectRepo()
	clients := newStubClientRepo()
	clientID := seedClient(t, clients)
	svc := NewProjectService(projects, clients, nil, nil, discardLogger)
	return svc, projects, clients, clientID
}

// ---------------------------------------------------------------------------
// AddProjectToClient
// ---------------------------------------------------------------------------

func TestProjectService_Add_ExistingClient(t *testing.T) {
	svc, projects, clients, clientID := newProjectFixture(t)

	project, err := svc.AddProjectToClient(context.Background(), projectInput(clientID, "u@x.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.ID == "" {
		t.Error("expected assigned ID")
	}
	if project.ClientID != clientID {
		t.Errorf("clientId round-trip: got %q, want %q", project.ClientID, clientID)
	}
	if project.Name != "New Project" {
		t.Errorf("unexpected name %q", project.Name)
	}
	if clients.existsCalls != 1 {
		t.Errorf("expected exactly one client lookup, got %d", clients.existsCalls)
	}
	if len(projects.byID) != 1 {
		t.Errorf("expected 1 stored project, got %d", len(projects.byID))
	}
}

func TestProjectService_Add_MissingClient_NoWrite(t *testing.T) {
	svc, projects, _, _ := newProjectFixture(t)

	_, err := svc.AddProjectToClient(context.Background(), projectInput("65f0c0ffee0000000000beef", "u@x.com"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected kind %q, got %q", domain.KindNotFound, domain.KindOf(err))
	}
	if len(projects.byID) != 0 {
		t.Errorf("no project must be persisted, got %d", len(projects.byID))
	}
}

func TestProjectService_Add_WithoutClient_SkipsLookup(t *testing.T) {
	svc, _, clients, _ := newProjectFixture(t)

	project, err := svc.AddProjectToClient(context.Background(), projectInput("", "u@x.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.ClientID != "" {
		t.Errorf("expected empty clientId, got %q", project.ClientID)
	}
	if clients.existsCalls != 0 {
		t.Errorf("expected no client lookup, got %d", clients.existsCalls)
	}
}

func TestProjectService_Add_LookupFailurePropagates(t *testing.T) {
	svc, projects, clients, clientID := newProjectFixture(t)
	ioErr := errors.New("connection reset")
	clients.existsErr = ioErr

	_, err := svc.AddProjectToClient(context.Background(), projectInput(clientID, "u@x.com"))
	if !errors.Is(err, ioErr) {
		t.Fatalf("expected wrapped I/O error, got %v", err)
	}
	if domain.KindOf(err) != "" {
		t.Errorf("I/O failure must not be classified, got %q", domain.KindOf(err))
	}
	if clients.existsCalls != 1 {
		t.Errorf("lookup must not be retried, got %d calls", clients.existsCalls)
	}
	if len(projects.byID) != 0 {
		t.Error("no project must be persisted")
	}
}

func TestProjectService_Add_ValidationAggregatesAllFields(t *testing.T) {
	svc, projects, clients, _ := newProjectFixture(t)

	_, err := svc.AddProjectToClient(context.Background(), ports.CreateProjectInput{Status: "NotAValidStatus"})
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	got := map[string]bool{}
	for _, v := range de.Violations {
		got[v.Field] = true
	}
	for _, field := range []string{"title", "userEmail", "budget", "deadline", "status"} {
		if !got[field] {
			t.Errorf("expected violation for %q, got %+v", field, de.Violations)
		}
	}
	if clients.existsCalls != 0 || len(projects.byID) != 0 {
		t.Error("validation must fail before any storage call")
	}
}

func TestProjectService_Add_ZeroBudgetAccepted(t *testing.T) {
	svc, _, _, clientID := newProjectFixture(t)
	in := projectInput(clientID, "u@x.com")
	in.Budget = budget(0)

	project, err := svc.AddProjectToClient(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.Budget != 0 {
		t.Errorf("expected budget 0, got %v", project.Budget)
	}
}

func TestProjectService_Add_IdempotentReplay(t *testing.T) {
	projects := newStubProjectRepo()
	clients := newStubClientRepo()
	clientID := seedClient(t, clients)
	idem := newStubIdempotencyStore()
	svc := NewProjectService(projects, clients, idem, nil, discardLogger)

	in := projectInput(clientID, "u@x.com")
	in.IdempotencyKey = "key-1"

	first, err := svc.AddProjectToClient(context.Background(), in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.AddProjectToClient(context.Background(), in)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("replay returned a different project: %s vs %s", first.ID, second.ID)
	}
	if len(projects.byID) != 1 {
		t.Errorf("expected 1 stored project, got %d", len(projects.byID))
	}
}

func TestProjectService_Add_IdempotencyStoreFailureStillCreates(t *testing.T) {
	projects := newStubProjectRepo()
	clients := newStubClientRepo()
	clientID := seedClient(t, clients)
	idem := newStubIdempotencyStore()
	idem.lookupErr = errors.New("redis down")
	svc := NewProjectService(projects, clients, idem, nil, discardLogger)

	in := projectInput(clientID, "u@x.com")
	in.IdempotencyKey = "key-1"
	if _, err := svc.AddProjectToClient(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects.byID) != 1 {
		t.Errorf("expected 1 stored project, got %d", len(projects.byID))
	}
}

func TestProjectService_Add_PublishesActivity(t *testing.T) {
	projects := newStubProjectRepo()
	clients := newStubClientRepo()
	clientID := seedClient(t, clients)
	pub := &recordingPublisher{}
	svc := NewProjectService(projects, clients, nil, pub, discardLogger)

	if _, err := svc.AddProjectToClient(context.Background(), projectInput("65f0c0ffee0000000000beef", "u@x.com")); err == nil {
		t.Fatal("expected error for missing client")
	}
	if _, err := svc.AddProjectToClient(context.Background(), projectInput(clientID, "u@x.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := pub.actions()
	if len(got) != 1 || got[0] != "project:created" {
		t.Errorf("expected only project:created, got %v", got)
	}
}

// ---------------------------------------------------------------------------
// GetAllProjects
// ---------------------------------------------------------------------------

func TestProjectService_GetAll_Scenario(t *testing.T) {
	svc, _, _, clientID := newProjectFixture(t)
	ctx := context.Background()

	in := projectInput(clientID, "u@x.com")
	in.Title = "T"
	if _, err := svc.AddProjectToClient(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetAllProjects(ctx, domain.Filter{"userEmail": "u@x.com"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 project, got %d", len(got))
	}
	if got[0].ClientID != clientID {
		t.Errorf("expected clientId %q, got %q", clientID, got[0].ClientID)
	}
}

func TestProjectService_GetAll_FilterSubset(t *testing.T) {
	svc, _, _, clientID := newProjectFixture(t)
	ctx := context.Background()

	a := projectInput(clientID, "filter@example.com")
	b := projectInput(clientID, "other@example.com")
	b.Status = domain.ProjectCompleted
	c := projectInput(clientID, "filter@example.com")
	c.Status = domain.ProjectCompleted
	for _, in := range []ports.CreateProjectInput{a, b, c} {
		if _, err := svc.AddProjectToClient(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	cases := []struct {
		name   string
		filter domain.Filter
		want   int
	}{
		{"empty filter returns all", domain.Filter{}, 3},
		{"nil filter returns all", nil, 3},
		{"by userEmail", domain.Filter{"userEmail": "filter@example.com"}, 2},
		{"every key must match", domain.Filter{"userEmail": "filter@example.com", "status": "Completed"}, 1},
		{"no match", domain.Filter{"userEmail": "nobody@example.com"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.GetAllProjects(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Errorf("expected %d, got %d", tc.want, len(got))
			}
		})
	}
}

func TestProjectService_GetAll_ByIDAndBudget(t *testing.T) {
	svc, _, _, clientID := newProjectFixture(t)
	ctx := context.Background()

	first, err := svc.AddProjectToClient(ctx, projectInput(clientID, "u@x.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	cheap := projectInput(clientID, "u@x.com")
	cheap.Budget = budget(0)
	if _, err := svc.AddProjectToClient(ctx, cheap); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name   string
		filter domain.Filter
		want   int
	}{
		{"by id", domain.Filter{"id": first.ID}, 1},
		{"by budget", domain.Filter{"budget": "1000"}, 1},
		{"by zero budget", domain.Filter{"budget": "0"}, 1},
		{"deadline is filterable", domain.Filter{"deadline": "2030-01-01"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.GetAllProjects(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Errorf("expected %d, got %d", tc.want, len(got))
			}
		})
	}
}

func TestProjectService_GetAll_UnknownFilterField(t *testing.T) {
	svc, _, _, _ := newProjectFixture(t)

	_, err := svc.GetAllProjects(context.Background(), domain.Filter{"owner": "x"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateProjectByID
// ---------------------------------------------------------------------------

func TestProjectService_Update(t *testing.T) {
	svc, _, _, clientID := newProjectFixture(t)
	ctx := context.Background()
	created, _ := svc.AddProjectToClient(ctx, projectInput(clientID, "u@x.com"))

	completed := domain.ProjectCompleted
	updated, err := svc.UpdateProjectByID(ctx, created.ID, ports.ProjectPatch{
		Name:   strPtr("Updated Name"),
		Status: &completed,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated project")
	}
	if updated.Name != "Updated Name" || updated.Status != domain.ProjectCompleted {
		t.Errorf("unexpected project: %+v", updated)
	}
	if updated.Title != created.Title {
		t.Errorf("untouched fields must be preserved")
	}
}

func TestProjectService_Update_AnyStatusTransition(t *testing.T) {
	svc, _, _, clientID := newProjectFixture(t)
	ctx := context.Background()
	in := projectInput(clientID, "u@x.com")
	in.Status = domain.ProjectCompleted
	created, _ := svc.AddProjectToClient(ctx, in)

	for _, s := range []domain.ProjectStatus{domain.ProjectPending, domain.ProjectOngoing, domain.ProjectCompleted} {
		status := s
		if _, err := svc.UpdateProjectByID(ctx, created.ID, ports.ProjectPatch{Status: &status}); err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
	}

	bad := domain.ProjectStatus("Archived")
	if _, err := svc.UpdateProjectByID(ctx, created.ID, ports.ProjectPatch{Status: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for status outside the set, got %v", err)
	}
}

func TestProjectService_Update_ClientIDNotRevalidated(t *testing.T) {
	svc, _, clients, clientID := newProjectFixture(t)
	ctx := context.Background()
	created, _ := svc.AddProjectToClient(ctx, projectInput(clientID, "u@x.com"))
	callsAfterCreate := clients.existsCalls

	dangling := "65f0c0ffee0000000000beef"
	updated, err := svc.UpdateProjectByID(ctx, created.ID, ports.ProjectPatch{ClientID: &dangling})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ClientID != dangling {
		t.Errorf("expected clientId %q, got %q", dangling, updated.ClientID)
	}
	if clients.existsCalls != callsAfterCreate {
		t.Error("update must not look up the client")
	}
}

func TestProjectService_Update_Missing(t *testing.T) {
	svc, _, _, _ := newProjectFixture(t)

	updated, err := svc.UpdateProjectByID(context.Background(), "missing", ports.ProjectPatch{Name: strPtr("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil, got %+v", updated)
	}
}

// ---------------------------------------------------------------------------
// DeleteProjectByID
// ---------------------------------------------------------------------------

func TestProjectService_Delete_Twice(t *testing.T) {
	svc, _, _, clientID := newProjectFixture(t)
	ctx := context.Background()
	created, _ := svc.AddProjectToClient(ctx, projectInput(clientID, "u@x.com"))

	res, err := svc.DeleteProjectByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res == nil || !res.Acknowledged || res.DeletedCount != 1 {
		t.Fatalf("unexpected delete result: %+v", res)
	}

	remaining, _ := svc.GetAllProjects(ctx, domain.Filter{})
	for _, p := range remaining {
		if p.ID == created.ID {
			t.Fatal("deleted project still listed")
		}
	}

	again, err := svc.DeleteProjectByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
	if again != nil {
		t.Errorf("second delete must return nil, got %+v", again)
	}
}

func TestProjectService_ClientDeleteDoesNotCascade(t *testing.T) {
	projects := newStubProjectRepo()
	clients := newStubClientRepo()
	clientID := seedClient(t, clients)
	projectSvc := NewProjectService(projects, clients, nil, nil, discardLogger)
	clientSvc := NewClientService(clients, nil, discardLogger)
	ctx := context.Background()

	created, _ := projectSvc.AddProjectToClient(ctx, projectInput(clientID, "u@x.com"))
	if _, err := clientSvc.DeleteClientByID(ctx, clientID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	got, _ := projectSvc.GetAllProjects(ctx, domain.Filter{})
	if len(got) != 1 || got[0].ID != created.ID || got[0].ClientID != clientID {
		t.Errorf("project must survive client deletion unchanged, got %+v", got)
	}
}
