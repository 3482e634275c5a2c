package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

func TestClientHandler_Create_DefaultsOwnerToCaller(t *testing.T) {
	var got ports.CreateClientInput
	svc := &stubClientService{
		createFn: func(_ context.Context, in ports.CreateClientInput) (*domain.Client, error) {
			got = in
			return &domain.Client{ID: "c1", Email: in.Email, UserEmail: in.UserEmail, Phone: in.Phone}, nil
		},
	}
	h := NewClientHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/clients", strings.NewReader(`{"email":"acme@example.com","phone":"555"}`), "owner@example.com")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.UserEmail != "owner@example.com" {
		t.Fatalf("expected owner from claims, got %q", got.UserEmail)
	}
	decodeEnvelope(t, rec)
}

func TestClientHandler_Create_KeepsExplicitOwner(t *testing.T) {
	var got ports.CreateClientInput
	svc := &stubClientService{
		createFn: func(_ context.Context, in ports.CreateClientInput) (*domain.Client, error) {
			got = in
			return &domain.Client{ID: "c1"}, nil
		},
	}
	h := NewClientHandler(svc)

	body := `{"email":"acme@example.com","phone":"555","userEmail":"other@example.com"}`
	c, _ := newContext(http.MethodPost, "/api/clients", strings.NewReader(body), "owner@example.com")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.UserEmail != "other@example.com" {
		t.Fatalf("expected explicit owner, got %q", got.UserEmail)
	}
}

func TestClientHandler_List_PassesQueryFilter(t *testing.T) {
	svc := &stubClientService{
		listFn: func(_ context.Context, f domain.Filter) ([]domain.Client, error) {
			if len(f) != 2 || f["userEmail"] != "a@example.com" || f["company"] != "Acme" {
				t.Fatalf("unexpected filter: %v", f)
			}
			return []domain.Client{}, nil
		},
	}
	h := NewClientHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/clients?userEmail=a@example.com&company=Acme&company=Other", nil, "a@example.com")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if data := string(decodeEnvelope(t, rec).Data); data != "[]" {
		t.Fatalf("expected empty list, got %s", data)
	}
}

func TestClientHandler_Update(t *testing.T) {
	svc := &stubClientService{
		updateFn: func(_ context.Context, id string, p ports.ClientPatch) (*domain.Client, error) {
			if id != "c1" || p.Phone == nil || *p.Phone != "777" || p.Name != nil {
				t.Fatalf("unexpected update %s %+v", id, p)
			}
			return &domain.Client{ID: id, Phone: *p.Phone}, nil
		},
	}
	h := NewClientHandler(svc)

	c, rec := newContext(http.MethodPatch, "/", strings.NewReader(`{"phone":"777"}`), "a@example.com")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClientHandler_Delete_PropagatesError(t *testing.T) {
	boom := errors.New("db down")
	svc := &stubClientService{
		deleteFn: func(context.Context, string) (*domain.Client, error) { return nil, boom },
	}
	h := NewClientHandler(svc)

	c, _ := newContext(http.MethodDelete, "/", nil, "a@example.com")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Delete(c); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
