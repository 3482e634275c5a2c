package domain

import "time"

// ProjectStatus is the workflow state of a project. Any status may replace any
// other; only membership in the set is enforced.
type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "Ongoing"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectPending   ProjectStatus = "Pending"
)

// Valid reports whether s is one of the enumerated statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOngoing, ProjectCompleted, ProjectPending:
		return true
	}
	return false
}

// Project belongs to a user (UserEmail) and optionally references a Client.
// ClientID is a non-owning reference; deleting the client leaves it as is.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	UserEmail   string        `json:"userEmail"`
	Budget      float64       `json:"budget"`
	Deadline    time.Time     `json:"deadline"`
	Status      ProjectStatus `json:"status"`
	ClientID    string        `json:"clientId,omitempty"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
}

// DeleteResult acknowledges a removal by identifier.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
