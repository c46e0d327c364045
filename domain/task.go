package domain

import "time"

// Task statuses. The set is fixed; there is no configurable workflow.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work inside a project. Deleting the project deletes
// its tasks; deleting the assigned user only clears the assignment.
type Task struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	DueDate     Date      `json:"due_date"`
	AssignedTo  *string   `json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// ProjectOwnerID is denormalized from the parent project by the
	// repository so access checks stay pure.
	ProjectOwnerID string `json:"-"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// IsOverdue reports whether the task is past due and still open.
func (t *Task) IsOverdue(today Date) bool {
	if t == nil || t.IsCompleted() {
		return false
	}
	return t.DueDate.Before(today)
}

// TaskActivityLog is an append-only record of a task event. Rows are
// written only by the task creation hook, never by client requests.
type TaskActivityLog struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
