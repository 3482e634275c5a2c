package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	order     []string
	byID      map[string]*domain.User
	seq       int
	createErr error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		u := *r.byID[id]
		u.PasswordHash = "" // mirrors the projection
		users = append(users, u)
	}
	return users, nil
}

func (r *stubUserRepo) SetBlocked(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if !u.IsBlocked {
		u.IsBlocked = true
		u.UpdatedAt = u.UpdatedAt.Add(time.Second)
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

type stubClientRepo struct {
	order       []string
	byID        map[string]*domain.Client
	seq         int
	existsCalls int
	existsErr   error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("%024x", r.seq)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubClientRepo) Exists(_ context.Context, id string) (bool, error) {
	r.existsCalls++
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.byID[id]
	return ok, nil
}

func clientField(c *domain.Client, key string) string {
	switch key {
	case "id":
		return c.ID
	case "name":
		return c.Name
	case "email":
		return c.Email
	case "userEmail":
		return c.UserEmail
	case "phone":
		return c.Phone
	case "company":
		return c.Company
	case "notes":
		return c.Notes
	}
	return ""
}

func (r *stubClientRepo) Find(_ context.Context, filter domain.Filter) ([]domain.Client, error) {
	out := []domain.Client{}
	for _, id := range r.order {
		c := r.byID[id]
		match := true
		for k, v := range filter {
			if clientField(c, k) != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClientRepo) UpdateByID(_ context.Context, id string, p ports.ClientPatch) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.UserEmail != nil {
		c.UserEmail = *p.UserEmail
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) DeleteByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return c, nil
}

type stubProjectRepo struct {
	order     []string
	byID      map[string]*domain.Project
	seq       int
	createErr error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("project-%d", r.seq)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func projectField(p *domain.Project, key string) string {
	switch key {
	case "id":
		return p.ID
	case "budget":
		return strconv.FormatFloat(p.Budget, 'f', -1, 64)
	case "title":
		return p.Title
	case "userEmail":
		return p.UserEmail
	case "status":
		return string(p.Status)
	case "clientId":
		return p.ClientID
	case "name":
		return p.Name
	case "description":
		return p.Description
	}
	return ""
}

func (r *stubProjectRepo) Find(_ context.Context, filter domain.Filter) ([]domain.Project, error) {
	out := []domain.Project{}
	for _, id := range r.order {
		p := r.byID[id]
		match := true
		for k, v := range filter {
			if projectField(p, k) != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) UpdateByID(_ context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.UserEmail != nil {
		p.UserEmail = *patch.UserEmail
	}
	if patch.Budget != nil {
		p.Budget = *patch.Budget
	}
	if patch.Deadline != nil {
		p.Deadline = *patch.Deadline
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.ClientID != nil {
		p.ClientID = *patch.ClientID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) DeleteByID(_ context.Context, id string) (*domain.DeleteResult, error) {
	if _, ok := r.byID[id]; !ok {
		return nil, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type stubIdempotencyStore struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]string)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, key, id string) error {
	s.keys[key] = id
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (p *recordingPublisher) Publish(e domain.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Entity+":"+e.Action)
	}
	return out
}
