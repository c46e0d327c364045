package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

type ProjectFilter struct {
	OwnerID string
	Search  string
	Limit   int
	Offset  int
}

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	// CreateWithTasks inserts the project and its nested tasks in one
	// transaction. Any failure rolls back every row.
	CreateWithTasks(ctx context.Context, project *domain.Project, tasks []domain.Task) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}
