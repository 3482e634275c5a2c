package domain

import "time"

const (
	EntityUser    = "user"
	EntityClient  = "client"
	EntityProject = "project"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionBlocked = "blocked"
)

// ActivityEvent records a successful write for the audit trail.
type ActivityEvent struct {
	ID         string
	Entity     string
	EntityID   string
	Action     string
	UserEmail  string // owner context, when known
	OccurredAt time.Time
}
