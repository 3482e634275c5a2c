package service

import (
	"time"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

type nopPublisher struct{}

func (nopPublisher) Publish(domain.ActivityEvent) {}

// NopPublisher discards activity events.
var NopPublisher ports.ActivityPublisher = nopPublisher{}

func publish(p ports.ActivityPublisher, entity, action, id, userEmail string) {
	p.Publish(domain.ActivityEvent{
		Entity:     entity,
		EntityID:   id,
		Action:     action,
		UserEmail:  userEmail,
		OccurredAt: time.Now().UTC(),
	})
}

func publisherOrNop(p ports.ActivityPublisher) ports.ActivityPublisher {
	if p == nil {
		return NopPublisher
	}
	return p
}
