package transport

import (
	"github.com/taskforge/backend/domain"
)

// TaskRequest carries a full or partial task payload. Pointer fields
// distinguish "absent" from "set": absent fields are not validated and do
// not touch the stored record on update.
type TaskRequest struct {
	ProjectID   *string `json:"project_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
	AssignedTo  *string `json:"assigned_to"`
}

// Change converts the request into a domain change set, parsing the due
// date. A malformed date yields the structured field error directly.
func (r TaskRequest) Change() (domain.TaskChange, error) {
	change := domain.TaskChange{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		AssignedTo:  r.AssignedTo,
	}

	if r.DueDate != nil {
		parsed, err := domain.ParseDate(*r.DueDate)
		if err != nil {
			errs := domain.NewValidationError()
			errs.Add("due_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
			return change, errs
		}
		change.DueDate = &parsed
	}

	return change, nil
}

// ProjectCreateRequest creates a project together with a batch of nested
// tasks in one transaction.
type ProjectCreateRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreateTasks []TaskRequest `json:"create_tasks"`
}

type ProjectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ProfileUpdateRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
