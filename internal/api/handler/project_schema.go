package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// HeaderIdempotencyKey makes project creation replay-safe when present.
const HeaderIdempotencyKey = "Idempotency-Key"

// idempotencyKey scopes the Idempotency-Key header to the authenticated
// caller, so two users sending the same key never share a project.
func idempotencyKey(c echo.Context) string {
	key := c.Request().Header.Get(HeaderIdempotencyKey)
	if key == "" {
		return ""
	}
	email, _, err := ctxClaims(c)
	if err != nil {
		return ""
	}
	return email + ":" + key
}

// deadlineLayouts are tried in order when parsing a deadline.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

type createProjectRequest struct {
	Title       string   `json:"title"`
	UserEmail   string   `json:"userEmail"`
	Budget      *float64 `json:"budget"`
	Deadline    string   `json:"deadline"    example:"2025-12-31"`
	Status      string   `json:"status"      example:"Pending"`
	ClientID    string   `json:"clientId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

type updateProjectRequest struct {
	Title       *string  `json:"title"`
	UserEmail   *string  `json:"userEmail"`
	Budget      *float64 `json:"budget"`
	Deadline    *string  `json:"deadline"`
	Status      *string  `json:"status"`
	ClientID    *string  `json:"clientId"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
}

var deadlineViolation = domain.FieldViolation{
	Field:  "deadline",
	Reason: "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
}

func parseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// withDeadlineViolation runs validate and reports the unparsable deadline
// alongside every other violation. validate's own deadline entry is dropped.
func withDeadlineViolation(validate func() error) error {
	violations := []domain.FieldViolation{deadlineViolation}

	err := validate()
	var de *domain.Error
	switch {
	case err == nil:
	case errors.As(err, &de) && de.Kind == domain.KindValidation:
		for _, v := range de.Violations {
			if v.Field != deadlineViolation.Field {
				violations = append(violations, v)
			}
		}
	default:
		return err
	}
	return domain.NewValidationError(violations...)
}

func (r createProjectRequest) toInput(key string) (ports.CreateProjectInput, error) {
	in := ports.CreateProjectInput{
		Title:          r.Title,
		UserEmail:      r.UserEmail,
		Budget:         r.Budget,
		Status:         domain.ProjectStatus(r.Status),
		ClientID:       r.ClientID,
		Name:           r.Name,
		Description:    r.Description,
		IdempotencyKey: key,
	}
	if r.Deadline != "" {
		d, ok := parseDeadline(r.Deadline)
		if !ok {
			return in, withDeadlineViolation(in.Validate)
		}
		in.Deadline = d
	}
	return in, nil
}

func (r updateProjectRequest) toPatch() (ports.ProjectPatch, error) {
	p := ports.ProjectPatch{
		Title:       r.Title,
		UserEmail:   r.UserEmail,
		Budget:      r.Budget,
		ClientID:    r.ClientID,
		Name:        r.Name,
		Description: r.Description,
	}
	if r.Status != nil {
		s := domain.ProjectStatus(*r.Status)
		p.Status = &s
	}
	if r.Deadline != nil {
		d, ok := parseDeadline(*r.Deadline)
		if !ok {
			return p, withDeadlineViolation(p.Validate)
		}
		p.Deadline = &d
	}
	return p, nil
}
