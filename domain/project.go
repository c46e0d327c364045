package domain

import "time"

// MaxNameLength bounds project names and task titles.
const MaxNameLength = 255

// Project groups tasks under a single owner. The owner is fixed at
// creation time; deleting the owner deletes the project.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	Tasks       []Task    `json:"tasks,omitempty"`
}
