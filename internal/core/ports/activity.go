package ports

import (
	"context"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// ActivityPublisher accepts audit events. Publish must not block the caller
// on persistence.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}

// ActivityRepository persists audit events.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}
