package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

// TaskFilter narrows task listings. SubjectID scopes results to the
// subject's visible set: tasks in projects they own plus tasks assigned
// to them.
type TaskFilter struct {
	SubjectID  string
	Status     string
	AssignedTo string
	DueDate    *domain.Date
	Search     string
	Limit      int
	Offset     int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	ListOverdue(ctx context.Context, subjectID string, today domain.Date) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
